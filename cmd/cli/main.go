// Command foundloss is a CLI client for the foundloss community board.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/foundloss/foundloss/internal/api"
	"github.com/foundloss/foundloss/internal/contact"
	"github.com/foundloss/foundloss/internal/directory"
	"github.com/foundloss/foundloss/internal/form"
	"github.com/foundloss/foundloss/internal/geo"
	"github.com/foundloss/foundloss/internal/lifecycle"
	"github.com/foundloss/foundloss/internal/model"
	"github.com/foundloss/foundloss/internal/session"
)

// ---- utils ----

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// row is the short listing format printed by browse and mine.
type row struct {
	ID       string
	Type     string
	Title    string
	Category string
	Location string
	Status   string
	Posted   string
}

func toRows(items []model.Item) []row {
	rows := []row{}
	for _, item := range items {
		rows = append(rows, row{
			ID:       item.ID,
			Type:     string(item.Type),
			Title:    item.Title,
			Category: item.Category,
			Location: item.Location,
			Status:   string(item.Status),
			Posted:   item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

// defaultAddr resolves the backend address: flag beats env beats the
// local dev default.
func defaultAddr() string {
	if v := os.Getenv("FOUNDLOSS_ADDR"); v != "" {
		return v
	}
	return "http://localhost:8000"
}

// promptPassword reads a password without echo when -p is not given.
func promptPassword(label string) string {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fail(err)
	}
	return string(b)
}

// fieldError pairs a field name with its violation for display.
type fieldError struct {
	Field   string
	Message string
}

// collectFieldErrors flattens form errors so a failed submit reports
// every violated field at once.
func collectFieldErrors(e form.FieldErrors) []fieldError {
	pairs := []struct{ name, msg string }{
		{"title", e.Title},
		{"description", e.Description},
		{"category", e.Category},
		{"color", e.Color},
		{"location", e.Location},
		{"contact-email", e.ContactEmail},
		{"contact-phone", e.ContactPhone},
		{"name", e.FullName},
		{"email", e.Email},
		{"phone", e.Phone},
		{"password", e.Password},
		{"confirm-password", e.ConfirmPassword},
	}
	out := []fieldError{}
	for _, p := range pairs {
		if p.msg != "" {
			out = append(out, fieldError{Field: p.name, Message: p.msg})
		}
	}
	return out
}

func usage() {
	fmt.Fprintf(os.Stderr, `foundloss CLI
Usage:
  foundloss [-addr URL] [-v] <cmd> [args]

Commands:
  version
  register    -email <e> -name <n> -phone <p> [-password <pw>]  (saves session)
  login       -email <e> [-password <pw>]                       (saves session)
  logout
  whoami
  browse      [-type found|lost] [-category <c>] [-q <text>] [-limit <n>]
  show        -id <id>
  post-found  -title -desc -category -color -location [-contact-email -contact-phone] [-lat -lon | -here]
  post-lost   (same flags as post-found)
  mine        [-tab all|found|lost|resolved]
  resolve     -id <id>
  reactivate  -id <id>
  contact     -id <id> -via email|whatsapp|sms [-message <m>] [-print]
`)
	os.Exit(2)
}

var (
	version   = "dev"
	buildDate = "unknown"
)

// ---- session helpers ----

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		fail(err)
	}
	return log
}

// requireAuth restores the saved session and refuses to proceed without
// a signed-in user.
func requireAuth(ctx context.Context, store *session.Store) {
	store.Restore(ctx)
	if (session.Protected{}).Decide(store) != session.DecisionAllow {
		fail(errors.New("not signed in (run: foundloss login)"))
	}
}

// ---- main ----

// main dispatches subcommands over the shared client SDK.
func main() {
	addr := flag.String("addr", defaultAddr(), "backend base URL")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := newLogger(*verbose)
	client := api.New(*addr, api.WithLogger(log))
	store := session.NewStore(client, session.WithLogger(log))

	switch cmd {

	case "version":
		fmt.Printf("foundloss %s (%s)\n", version, buildDate)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		name := fs.String("name", "", "full name")
		phone := fs.String("phone", "", "phone number")
		password := fs.String("password", "", "password (prompted when empty)")
		_ = fs.Parse(args)

		pw := *password
		if pw == "" {
			pw = promptPassword("password")
			if confirm := promptPassword("confirm password"); confirm != pw {
				fail(errors.New("passwords do not match"))
			}
		}
		f := form.SignupForm{
			FullName:        *name,
			Email:           *email,
			Phone:           *phone,
			Password:        pw,
			ConfirmPassword: pw,
		}
		profile, errs := f.Profile()
		if !errs.OK() {
			printJSON(collectFieldErrors(errs))
			os.Exit(1)
		}
		user, err := store.Register(ctx, profile)
		if err != nil {
			fail(err)
		}
		fmt.Println(user.ID)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password (prompted when empty)")
		_ = fs.Parse(args)
		if *email == "" {
			fail(errors.New("need -email"))
		}
		pw := *password
		if pw == "" {
			pw = promptPassword("password")
		}
		user, err := store.Login(ctx, model.Credentials{Email: *email, Password: pw})
		if err != nil {
			fail(err)
		}
		fmt.Printf("signed in as %s\n", user.FullName)

	case "logout":
		store.Logout()
		fmt.Println("ok")

	case "whoami":
		requireAuth(ctx, store)
		printJSON(store.CurrentUser())

	case "browse":
		fs := flag.NewFlagSet("browse", flag.ExitOnError)
		typ := fs.String("type", "", "found or lost")
		category := fs.String("category", "", "category filter (server-side)")
		query := fs.String("q", "", "free-text filter (client-side)")
		limit := fs.Int("limit", 0, "max results")
		_ = fs.Parse(args)

		if *typ != "" && !model.ItemType(*typ).Valid() {
			fail(fmt.Errorf("unknown type %q", *typ))
		}
		store.Restore(ctx)
		dir := directory.New(client, store, log)
		items, err := dir.List(ctx, api.ListOptions{
			Type:     model.ItemType(*typ),
			Category: *category,
			Limit:    *limit,
		})
		if err != nil {
			fail(err)
		}
		printJSON(toRows(directory.Filter(items, *query, directory.CategoryAll)))

	case "show":
		fs := flag.NewFlagSet("show", flag.ExitOnError)
		id := fs.String("id", "", "item id")
		_ = fs.Parse(args)
		if *id == "" {
			fail(errors.New("need -id"))
		}
		store.Restore(ctx)
		item, err := directory.New(client, store, log).Get(ctx, *id)
		if err != nil {
			fail(err)
		}
		printJSON(item)

	case "post-found":
		cmdPost(ctx, args, store, client, model.TypeFound)
	case "post-lost":
		cmdPost(ctx, args, store, client, model.TypeLost)

	case "mine":
		fs := flag.NewFlagSet("mine", flag.ExitOnError)
		tab := fs.String("tab", "all", "all, found, lost or resolved")
		_ = fs.Parse(args)

		requireAuth(ctx, store)
		items, err := directory.New(client, store, log).Mine(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(toRows(directory.TabFilter(items, directory.Tab(*tab))))

	case "resolve":
		cmdSetStatus(ctx, args, store, client, log, model.StatusResolved)
	case "reactivate":
		cmdSetStatus(ctx, args, store, client, log, model.StatusActive)

	case "contact":
		fs := flag.NewFlagSet("contact", flag.ExitOnError)
		id := fs.String("id", "", "item id")
		via := fs.String("via", "", "email, whatsapp or sms")
		message := fs.String("message", "", "message (defaults per item type)")
		printOnly := fs.Bool("print", false, "print the link instead of opening it")
		_ = fs.Parse(args)
		if *id == "" {
			fail(errors.New("need -id"))
		}

		requireAuth(ctx, store)
		item, err := directory.New(client, store, log).Get(ctx, *id)
		if err != nil {
			fail(err)
		}

		var opener contact.Opener = contact.ExecOpener{}
		if *printOnly {
			opener = printOpener{}
		}
		dialog := contact.NewDialog(item, client, store, opener, contact.WithLogger(log))
		if err := dialog.SelectChannel(model.ContactMethod(*via)); err != nil {
			fail(err)
		}
		if *message != "" {
			dialog.SetMessage(*message)
		}
		if err := dialog.Submit(ctx); err != nil {
			fail(err)
		}
		if !*printOnly {
			fmt.Println("opened", dialog.URI())
		}

	default:
		usage()
	}
}

// printOpener prints the deep link instead of launching a handler, for
// terminals without one.
type printOpener struct{}

func (printOpener) Open(uri string) error {
	fmt.Println(uri)
	return nil
}

// cmdPost submits a found or lost item. Validation failures report every
// violated field at once without touching the backend.
func cmdPost(ctx context.Context, args []string, store *session.Store, client *api.Client, typ model.ItemType) {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	title := fs.String("title", "", "item title")
	desc := fs.String("desc", "", "description")
	category := fs.String("category", "", "category ("+strings.Join(model.Categories, ", ")+")")
	color := fs.String("color", "", "color")
	location := fs.String("location", "", "where it was found/lost")
	contactEmail := fs.String("contact-email", "", "contact email (defaults to account email)")
	contactPhone := fs.String("contact-phone", "", "contact phone (defaults to account phone)")
	lat := fs.Float64("lat", 0, "latitude")
	lon := fs.Float64("lon", 0, "longitude")
	here := fs.Bool("here", false, "attach the current position")
	_ = fs.Parse(args)

	requireAuth(ctx, store)
	user := store.CurrentUser()

	f := form.ItemForm{
		Title:        *title,
		Description:  *desc,
		Category:     *category,
		Color:        *color,
		Location:     *location,
		ContactEmail: *contactEmail,
		ContactPhone: *contactPhone,
	}
	if f.ContactEmail == "" {
		f.ContactEmail = user.Email
	}
	if f.ContactPhone == "" {
		f.ContactPhone = user.Phone
	}

	var loc geo.Locator = geo.None
	if flagWasSet(fs, "lat") || flagWasSet(fs, "lon") {
		loc = geo.Fixed(*lat, *lon)
		*here = true
	}
	if *here {
		pos, err := geo.Bounded(loc).Current(ctx)
		if err != nil {
			// Capture failure is never fatal; the typed location stands.
			fmt.Fprintln(os.Stderr, "warning: position unavailable, posting without coordinates")
		} else {
			f.Latitude = &pos.Latitude
			f.Longitude = &pos.Longitude
			if f.Location == "" {
				f.Location = geo.FormatLocation(pos)
			}
		}
	}

	draft, errs := f.Draft(typ)
	if !errs.OK() {
		printJSON(collectFieldErrors(errs))
		os.Exit(1)
	}
	item, err := client.CreateItem(ctx, store.Token(), draft)
	if err != nil {
		fail(err)
	}
	fmt.Println(item.ID)
}

// cmdSetStatus drives the lifecycle controller for resolve/reactivate.
func cmdSetStatus(ctx context.Context, args []string, store *session.Store, client *api.Client, log *zap.Logger, status model.ItemStatus) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	id := fs.String("id", "", "item id")
	_ = fs.Parse(args)
	if *id == "" {
		fail(errors.New("need -id"))
	}

	requireAuth(ctx, store)
	ctrl := lifecycle.NewController(client, store, log)
	if err := ctrl.SetStatus(ctx, *id, status); err != nil {
		fail(err)
	}
	fmt.Println("ok")
}

func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func fail(err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintf(os.Stderr, "api error: status=%d detail=%s\n", apiErr.Status, apiErr.Detail)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
