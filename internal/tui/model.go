// Package tui is the interactive terminal front-end: session-gated pages
// for browsing, posting and managing found/lost items over the shared
// client SDK.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/foundloss/foundloss/internal/api"
	"github.com/foundloss/foundloss/internal/contact"
	"github.com/foundloss/foundloss/internal/directory"
	"github.com/foundloss/foundloss/internal/errs"
	"github.com/foundloss/foundloss/internal/form"
	"github.com/foundloss/foundloss/internal/geo"
	"github.com/foundloss/foundloss/internal/lifecycle"
	"github.com/foundloss/foundloss/internal/model"
	"github.com/foundloss/foundloss/internal/session"
)

// Page identifies which screen is active.
type Page int

const (
	// PageLogin is the sign-in form. Public; signed-in users are
	// bounced to the dashboard.
	PageLogin Page = iota
	// PageSignup is the registration form. Public like PageLogin.
	PageSignup
	// PageDashboard is the landing screen after sign-in: stats and
	// shortcuts to the other pages.
	PageDashboard
	// PageBrowse lists found or lost items with search and category
	// filtering.
	PageBrowse
	// PageDetail shows a single item and hosts the contact dialog.
	PageDetail
	// PagePost is the item submission form (found or lost).
	PagePost
	// PageMine lists the signed-in user's posts with status toggling.
	PageMine
)

// sessionRestoredMsg is sent once the saved-credential restore attempt
// settles, signed in or not.
type sessionRestoredMsg struct{}

// authDoneMsg is sent when a login or registration call completes.
type authDoneMsg struct {
	err error
}

// itemsLoadedMsg delivers a browse listing. gen guards against a stale
// response overwriting a newer request.
type itemsLoadedMsg struct {
	gen   int
	items []model.Item
	err   error
}

// mineLoadedMsg delivers the signed-in user's posts.
type mineLoadedMsg struct {
	gen   int
	items []model.Item
	err   error
}

// dashboardLoadedMsg delivers the recent listing and the user's posts
// for the dashboard stat cards.
type dashboardLoadedMsg struct {
	gen    int
	recent []model.Item
	mine   []model.Item
	err    error
}

// itemLoadedMsg delivers a single item for the detail page. gen guards
// against a slow response landing after the user navigated away.
type itemLoadedMsg struct {
	gen  int
	item model.Item
	err  error
}

// itemCreatedMsg is sent when an item submission completes.
type itemCreatedMsg struct {
	item model.Item
	err  error
}

// statusUpdatedMsg is sent when a status toggle settles. On error the
// lifecycle controller has already rolled the item back.
type statusUpdatedMsg struct {
	id  string
	err error
}

// contactDoneMsg is sent when a contact dialog submit settles.
type contactDoneMsg struct {
	uri string
	err error
}

// positionCapturedMsg delivers the result of a location capture for the
// submission form.
type positionCapturedMsg struct {
	pos geo.Position
	err error
}

// Deps carries the SDK services the UI drives. Everything is injected;
// the model owns no transport or persistence of its own.
type Deps struct {
	Session   *session.Store
	Directory *directory.Directory
	Lifecycle *lifecycle.Controller
	API       *api.Client
	Opener    contact.Opener
	Locator   geo.Locator
	Log       *zap.Logger
}

// Model is the top-level bubbletea model.
type Model struct {
	deps  Deps
	theme Theme
	keys  KeyMap

	width  int
	height int

	page Page
	// pending is the destination requested before the session restore
	// settled; -1 when none. Gates stay undecided while restoring, so
	// navigation parks here instead of redirecting early.
	pending  Page
	restored bool

	spin   spinner.Model
	status string
	errMsg string

	// Browse state. items is the raw listing; search and category
	// narrow it client-side without another round-trip.
	browseType   model.ItemType
	items        []model.Item
	listGen      int
	loading      bool
	cursor       int
	search       textinput.Model
	searchActive bool
	catIndex     int

	// Dashboard stats.
	stats directory.Stats

	// Detail page and its contact dialog. detailGen is bumped per load
	// so a response from a superseded request is discarded. submitting
	// is set while a contact submit runs off-loop; the dialog must not
	// be touched until the result message arrives.
	detail     model.Item
	detailGen  int
	dialog     *contact.Dialog
	backTo     Page
	contact    bool
	submitting bool

	// My-items state.
	mine    []model.Item
	mineGen int
	mineTab directory.Tab
	mineCur int

	// Forms.
	login    formModel
	signup   formModel
	post     formModel
	postType model.ItemType
}

// New creates the model. The session restore starts in Init; until it
// settles every page shows the loading placeholder rather than guessing
// at the gate outcome.
func New(deps Deps) Model {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"

	m := Model{
		deps:       deps,
		theme:      DefaultTheme,
		keys:       DefaultKeyMap,
		page:       PageDashboard,
		pending:    PageDashboard,
		spin:       spin,
		search:     search,
		browseType: model.TypeFound,
		mineTab:    directory.TabAll,
		postType:   model.TypeFound,
	}
	m.login = newForm("Email", "Password").masked(1)
	m.signup = newForm("Full name", "Email", "Phone", "Password", "Confirm password").masked(3).masked(4)
	m.post = newPostForm()
	return m
}

func newPostForm() formModel {
	return newForm("Title", "Description", "Category", "Color", "Location", "Contact email", "Contact phone")
}

// Init implements tea.Model: kick off the spinner and the one-shot
// session restore.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.restoreCmd())
}

// gateFor returns the access rule for a page.
func gateFor(page Page) session.Gate {
	if page == PageLogin || page == PageSignup {
		return session.Public{}
	}
	return session.Protected{}
}

// navigate applies the page's gate and either enters it, parks it until
// the restore settles, or bounces to the gate's redirect target.
func (m Model) navigate(page Page) (Model, tea.Cmd) {
	switch gateFor(page).Decide(m.deps.Session) {
	case session.DecisionPending:
		m.pending = page
		return m, nil
	case session.DecisionRedirect:
		if page == PageLogin || page == PageSignup {
			return m.enterPage(PageDashboard)
		}
		return m.enterPage(PageLogin)
	default:
		return m.enterPage(page)
	}
}

// enterPage switches screens and starts the page's data load.
func (m Model) enterPage(page Page) (Model, tea.Cmd) {
	m.page = page
	m.pending = -1
	m.errMsg = ""
	m.status = ""

	switch page {
	case PageDashboard:
		m.listGen++
		m.loading = true
		return m, m.loadDashboardCmd(m.listGen)
	case PageBrowse:
		m.listGen++
		m.loading = true
		m.cursor = 0
		m.searchActive = false
		m.search.SetValue("")
		m.catIndex = 0
		return m, m.loadBrowseCmd(m.listGen, m.browseType)
	case PageMine:
		m.mineGen++
		m.loading = true
		m.mineCur = 0
		m.mineTab = directory.TabAll
		return m, m.loadMineCmd(m.mineGen)
	case PagePost:
		m.post = newPostForm()
		if user := m.deps.Session.CurrentUser(); user != nil {
			m.post.fields[5].input.SetValue(user.Email)
			m.post.fields[6].input.SetValue(user.Phone)
		}
		return m, nil
	case PageLogin:
		m.login.reset()
		return m, nil
	case PageSignup:
		m.signup.reset()
		return m, nil
	}
	return m, nil
}

// Update implements tea.Model. Global messages first, then per-page key
// routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionRestoredMsg:
		m.restored = true
		if m.pending >= 0 {
			return passthrough(m.navigate(m.pending))
		}
		return m, nil

	case authDoneMsg:
		if msg.err != nil {
			m.errMsg = humanError(msg.err)
			return m, nil
		}
		return passthrough(m.enterPage(PageDashboard))

	case itemsLoadedMsg:
		if msg.gen != m.listGen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.items = msg.items
		m.cursor = 0
		return m, nil

	case mineLoadedMsg:
		if msg.gen != m.mineGen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.mine = msg.items
		m.deps.Lifecycle.Reset(msg.items)
		m.mineCur = 0
		return m, nil

	case dashboardLoadedMsg:
		if msg.gen != m.listGen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.stats = directory.ComputeStats(msg.recent, msg.mine)
		m.items = msg.recent
		return m, nil

	case itemLoadedMsg:
		if msg.gen != m.detailGen || m.page != PageDetail {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, errs.ErrNotFound) {
				// The post disappeared between listing and opening;
				// go back to wherever the user came from.
				next, cmd := m.navigate(m.backTo)
				next.errMsg = "That post is gone"
				return next, cmd
			}
			return m.fail(msg.err)
		}
		m.detail = msg.item
		m.dialog = contact.NewDialog(msg.item, m.deps.API, m.deps.Session, m.deps.Opener,
			contact.WithLogger(m.deps.Log))
		return m, nil

	case itemCreatedMsg:
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.status = "Posted " + msg.item.Title
		return passthrough(m.enterPage(PageMine))

	case statusUpdatedMsg:
		// The controller holds the authoritative copies either way:
		// the optimistic flip on success, the rollback on failure.
		m.mine = m.deps.Lifecycle.Items()
		if msg.err != nil {
			m.errMsg = humanError(msg.err)
		}
		return m, nil

	case contactDoneMsg:
		m.submitting = false
		m.contact = false
		if msg.err != nil {
			m.errMsg = humanError(msg.err)
			return m, nil
		}
		m.status = "Opened " + msg.uri
		return m, nil

	case positionCapturedMsg:
		if m.page != PagePost {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = "Location unavailable; type it in"
			return m, nil
		}
		m.post.fields[4].input.SetValue(geo.FormatLocation(msg.pos))
		m.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

// passthrough adapts a (Model, tea.Cmd) pair to the tea.Model interface.
func passthrough(m Model, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, regardless of focus.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.page {
	case PageLogin:
		return m.handleLoginKeys(msg)
	case PageSignup:
		return m.handleSignupKeys(msg)
	case PageDashboard:
		return m.handleDashboardKeys(msg)
	case PageBrowse:
		return m.handleBrowseKeys(msg)
	case PageDetail:
		return m.handleDetailKeys(msg)
	case PagePost:
		return m.handlePostKeys(msg)
	case PageMine:
		return m.handleMineKeys(msg)
	}
	return m, nil
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "enter" && m.login.atLastField():
		creds := model.Credentials{
			Email:    m.login.value(0),
			Password: m.login.value(1),
		}
		m.errMsg = ""
		return m, m.loginCmd(creds)
	case msg.String() == "enter":
		m.login = m.login.advance(1)
		return m, nil
	case key.Matches(msg, m.keys.GoSignup) && m.login.focus == len(m.login.fields)-1:
		// Tab past the last field jumps to the signup page.
		return passthrough(m.navigate(PageSignup))
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

func (m Model) handleSignupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		return passthrough(m.navigate(PageLogin))
	case msg.String() == "enter" && m.signup.atLastField():
		f := form.SignupForm{
			FullName:        m.signup.value(0),
			Email:           m.signup.value(1),
			Phone:           m.signup.value(2),
			Password:        m.signup.value(3),
			ConfirmPassword: m.signup.value(4),
		}
		profile, fieldErrs := f.Profile()
		m.signup.clearErrors()
		if !fieldErrs.OK() {
			m.signup.setError("Full name", fieldErrs.FullName)
			m.signup.setError("Email", fieldErrs.Email)
			m.signup.setError("Phone", fieldErrs.Phone)
			m.signup.setError("Password", fieldErrs.Password)
			m.signup.setError("Confirm password", fieldErrs.ConfirmPassword)
			return m, nil
		}
		m.errMsg = ""
		return m, m.signupCmd(profile)
	case msg.String() == "enter":
		m.signup = m.signup.advance(1)
		return m, nil
	}
	var cmd tea.Cmd
	m.signup, cmd = m.signup.Update(msg)
	return m, cmd
}

func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.GoBrowseFound):
		m.browseType = model.TypeFound
		return passthrough(m.navigate(PageBrowse))
	case key.Matches(msg, m.keys.GoBrowseLost):
		m.browseType = model.TypeLost
		return passthrough(m.navigate(PageBrowse))
	case key.Matches(msg, m.keys.GoPostFound):
		m.postType = model.TypeFound
		return passthrough(m.navigate(PagePost))
	case key.Matches(msg, m.keys.GoPostLost):
		m.postType = model.TypeLost
		return passthrough(m.navigate(PagePost))
	case key.Matches(msg, m.keys.GoMine):
		return passthrough(m.navigate(PageMine))
	case key.Matches(msg, m.keys.Logout):
		m.deps.Session.Logout()
		return passthrough(m.navigate(PageLogin))
	}
	return m, nil
}

// visibleItems applies the client-side search and category narrowing to
// the raw browse listing.
func (m Model) visibleItems() []model.Item {
	return directory.Filter(m.items, m.search.Value(), m.currentCategory())
}

func (m Model) currentCategory() string {
	if m.catIndex == 0 {
		return directory.CategoryAll
	}
	return model.Categories[m.catIndex-1]
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchActive {
		switch msg.String() {
		case "enter", "esc":
			m.searchActive = false
			m.search.Blur()
			if msg.String() == "esc" {
				m.search.SetValue("")
			}
			m.cursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.cursor = 0
		return m, cmd
	}

	visible := m.visibleItems()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return passthrough(m.navigate(PageDashboard))
	case key.Matches(msg, m.keys.Filter):
		m.searchActive = true
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.NextCategory):
		m.catIndex = (m.catIndex + 1) % (len(model.Categories) + 1)
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(visible) {
			m.backTo = PageBrowse
			m.page = PageDetail
			m.loading = true
			m.contact = false
			m.dialog = nil
			m.detailGen++
			return m, m.loadDetailCmd(m.detailGen, visible[m.cursor].ID)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.contact && m.dialog != nil {
		// The submit command owns the dialog until its result arrives;
		// touching it from here would race with that goroutine.
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.contact = false
			return m, nil
		case "e":
			m.errMsg = ""
			_ = m.dialog.SelectChannel(model.MethodEmail)
			return m, nil
		case "w":
			m.errMsg = ""
			_ = m.dialog.SelectChannel(model.MethodWhatsApp)
			return m, nil
		case "s":
			m.errMsg = ""
			_ = m.dialog.SelectChannel(model.MethodSMS)
			return m, nil
		case "enter":
			if m.dialog.State() != contact.StateChannelSelected {
				m.errMsg = "Pick a channel first: e, w or s"
				return m, nil
			}
			m.submitting = true
			return m, m.contactCmd(m.dialog)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return passthrough(m.navigate(m.backTo))
	case key.Matches(msg, m.keys.Contact):
		if m.dialog != nil {
			// Contacting your own post makes no sense; the backend
			// would reject it anyway.
			if user := m.deps.Session.CurrentUser(); user != nil && user.ID == m.detail.UserID {
				m.errMsg = "This is your own post"
				return m, nil
			}
			m.contact = true
			m.errMsg = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handlePostKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		return passthrough(m.navigate(PageDashboard))
	case msg.String() == "ctrl+g":
		// Capture runs off-loop; the bounded locator can take up to
		// the full capture timeout to answer.
		return m, m.captureCmd()
	case msg.String() == "enter" && m.post.atLastField():
		f := form.ItemForm{
			Title:        m.post.value(0),
			Description:  m.post.value(1),
			Category:     m.post.value(2),
			Color:        m.post.value(3),
			Location:     m.post.value(4),
			ContactEmail: m.post.value(5),
			ContactPhone: m.post.value(6),
		}
		draft, fieldErrs := f.Draft(m.postType)
		m.post.clearErrors()
		if !fieldErrs.OK() {
			m.post.setError("Title", fieldErrs.Title)
			m.post.setError("Description", fieldErrs.Description)
			m.post.setError("Category", fieldErrs.Category)
			m.post.setError("Color", fieldErrs.Color)
			m.post.setError("Location", fieldErrs.Location)
			m.post.setError("Contact email", fieldErrs.ContactEmail)
			m.post.setError("Contact phone", fieldErrs.ContactPhone)
			return m, nil
		}
		m.errMsg = ""
		m.loading = true
		return m, m.createCmd(draft)
	case msg.String() == "enter":
		m.post = m.post.advance(1)
		return m, nil
	}
	var cmd tea.Cmd
	m.post, cmd = m.post.Update(msg)
	return m, cmd
}

// visibleMine applies the status tab to the user's posts.
func (m Model) visibleMine() []model.Item {
	return directory.TabFilter(m.mine, m.mineTab)
}

func (m Model) handleMineKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleMine()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return passthrough(m.navigate(PageDashboard))
	case key.Matches(msg, m.keys.NextTab):
		m.mineTab = nextTab(m.mineTab)
		m.mineCur = 0
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.mineCur > 0 {
			m.mineCur--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.mineCur < len(visible)-1 {
			m.mineCur++
		}
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if m.mineCur < len(visible) {
			m.backTo = PageMine
			m.page = PageDetail
			m.loading = true
			m.contact = false
			m.dialog = nil
			m.detailGen++
			return m, m.loadDetailCmd(m.detailGen, visible[m.mineCur].ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		if m.mineCur >= len(visible) {
			return m, nil
		}
		item := visible[m.mineCur]
		next := model.StatusResolved
		if item.Status == model.StatusResolved {
			next = model.StatusActive
		}
		// Optimistic: flip locally right away so the row re-renders,
		// then let statusUpdatedMsg reconcile with the controller.
		cmd := m.toggleCmd(item.ID, next)
		m.mine = flipStatus(m.mine, item.ID, next)
		return m, cmd
	}
	return m, nil
}

func nextTab(tab directory.Tab) directory.Tab {
	switch tab {
	case directory.TabAll:
		return directory.TabFound
	case directory.TabFound:
		return directory.TabLost
	case directory.TabLost:
		return directory.TabResolved
	default:
		return directory.TabAll
	}
}

func flipStatus(items []model.Item, id string, status model.ItemStatus) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == id {
			out[i].Status = status
		}
	}
	return out
}

// fail surfaces a load failure. A rejected credential ends the session:
// the store is cleared and the user lands back on the login page.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, errs.ErrUnauthorized) {
		m.deps.Session.Logout()
		next, cmd := m.enterPage(PageLogin)
		next.errMsg = "Session expired, sign in again"
		return next, cmd
	}
	m.errMsg = humanError(err)
	return m, nil
}

// humanError strips the transport framing from API errors for display.
func humanError(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}

// Commands. Each runs one SDK call off the update loop and reports back
// through a message.

func (m Model) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		m.deps.Session.Restore(context.Background())
		return sessionRestoredMsg{}
	}
}

func (m Model) loginCmd(creds model.Credentials) tea.Cmd {
	return func() tea.Msg {
		_, err := m.deps.Session.Login(context.Background(), creds)
		return authDoneMsg{err: err}
	}
}

func (m Model) signupCmd(profile model.Profile) tea.Cmd {
	return func() tea.Msg {
		_, err := m.deps.Session.Register(context.Background(), profile)
		return authDoneMsg{err: err}
	}
}

func (m Model) loadBrowseCmd(gen int, typ model.ItemType) tea.Cmd {
	return func() tea.Msg {
		items, err := m.deps.Directory.List(context.Background(), api.ListOptions{Type: typ})
		return itemsLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (m Model) loadMineCmd(gen int) tea.Cmd {
	return func() tea.Msg {
		items, err := m.deps.Directory.Mine(context.Background())
		return mineLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (m Model) loadDashboardCmd(gen int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		recent, err := m.deps.Directory.List(ctx, api.ListOptions{Limit: 10})
		if err != nil {
			return dashboardLoadedMsg{gen: gen, err: err}
		}
		mine, err := m.deps.Directory.Mine(ctx)
		if err != nil {
			return dashboardLoadedMsg{gen: gen, err: err}
		}
		return dashboardLoadedMsg{gen: gen, recent: recent, mine: mine}
	}
}

func (m Model) loadDetailCmd(gen int, id string) tea.Cmd {
	return func() tea.Msg {
		item, err := m.deps.Directory.Get(context.Background(), id)
		return itemLoadedMsg{gen: gen, item: item, err: err}
	}
}

func (m Model) createCmd(draft model.ItemDraft) tea.Cmd {
	return func() tea.Msg {
		item, err := m.deps.API.CreateItem(context.Background(), m.deps.Session.Token(), draft)
		return itemCreatedMsg{item: item, err: err}
	}
}

func (m Model) toggleCmd(id string, status model.ItemStatus) tea.Cmd {
	return func() tea.Msg {
		err := m.deps.Lifecycle.SetStatus(context.Background(), id, status)
		return statusUpdatedMsg{id: id, err: err}
	}
}

func (m Model) captureCmd() tea.Cmd {
	return func() tea.Msg {
		pos, err := geo.Bounded(m.deps.Locator).Current(context.Background())
		return positionCapturedMsg{pos: pos, err: err}
	}
}

func (m Model) contactCmd(dialog *contact.Dialog) tea.Cmd {
	return func() tea.Msg {
		err := dialog.Submit(context.Background())
		return contactDoneMsg{uri: dialog.URI(), err: err}
	}
}
