package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/foundloss/foundloss/internal/contact"
	"github.com/foundloss/foundloss/internal/model"
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch {
	case !m.restored:
		body = m.spin.View() + " restoring session..."
	case m.page == PageLogin:
		body = m.viewLogin()
	case m.page == PageSignup:
		body = m.viewSignup()
	case m.page == PageDashboard:
		body = m.viewDashboard()
	case m.page == PageBrowse:
		body = m.viewBrowse()
	case m.page == PageDetail:
		body = m.viewDetail()
	case m.page == PagePost:
		body = m.viewPost()
	case m.page == PageMine:
		body = m.viewMine()
	}
	return m.viewHeader() + "\n" + body + m.viewStatusBar()
}

func (m Model) viewHeader() string {
	style := lipgloss.NewStyle().Foreground(m.theme.HeaderForeground).Bold(true)
	title := "foundloss"
	if user := m.deps.Session.CurrentUser(); user != nil {
		title += "  ·  " + user.FullName
	}
	return style.Render(title)
}

func (m Model) viewStatusBar() string {
	if m.errMsg != "" {
		return "\n" + lipgloss.NewStyle().Foreground(m.theme.ErrorText).Render(m.errMsg)
	}
	if m.status != "" {
		return "\n" + lipgloss.NewStyle().Foreground(m.theme.FaintText).Render(m.status)
	}
	return ""
}

func (m Model) help(entries ...string) string {
	return lipgloss.NewStyle().Foreground(m.theme.HelpText).Render(strings.Join(entries, "  ·  "))
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString("Sign in\n\n")
	b.WriteString(m.login.View(m.theme))
	b.WriteString("\n")
	b.WriteString(m.help("enter submit", "tab from password: sign up", "ctrl+c quit"))
	return b.String()
}

func (m Model) viewSignup() string {
	var b strings.Builder
	b.WriteString("Create an account\n\n")
	b.WriteString(m.signup.View(m.theme))
	b.WriteString("\n")
	b.WriteString(m.help("enter submit", "esc back to sign in"))
	return b.String()
}

func (m Model) viewDashboard() string {
	if m.loading {
		return m.spin.View() + " loading..."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Community board: %d recent posts (%d found, %d lost) · %d of yours\n\n",
		m.stats.Total, m.stats.Found, m.stats.Lost, m.stats.Mine))
	b.WriteString("  1  Browse found items\n")
	b.WriteString("  2  Browse lost items\n")
	b.WriteString("  3  Report a found item\n")
	b.WriteString("  4  Report a lost item\n")
	b.WriteString("  5  My items\n\n")
	b.WriteString(m.help("ctrl+l log out", "q quit"))
	return b.String()
}

func (m Model) itemRow(item model.Item, selected bool) string {
	accent := lipgloss.NewStyle().Foreground(m.theme.typeAccent(string(item.Type)))
	status := ""
	if item.Status == model.StatusResolved {
		status = lipgloss.NewStyle().Foreground(m.theme.ResolvedAccent).Render(" [resolved]")
	}
	line := fmt.Sprintf("%s %s · %s · %s%s",
		accent.Render(string(item.Type)), item.Title, item.Category, item.Location, status)
	if selected {
		return lipgloss.NewStyle().
			Background(m.theme.SelectedBackground).
			Foreground(m.theme.SelectedForeground).
			Render("> " + line)
	}
	return "  " + line
}

func (m Model) viewBrowse() string {
	if m.loading {
		return m.spin.View() + " loading..."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Browse %s items · category: %s\n", m.browseType, m.currentCategory()))
	if m.searchActive || m.search.Value() != "" {
		b.WriteString(m.search.View() + "\n")
	}
	b.WriteString("\n")

	visible := m.visibleItems()
	if len(visible) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("no items match") + "\n")
	}
	for i, item := range visible {
		b.WriteString(m.itemRow(item, i == m.cursor) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help("/ search", "c category", "enter open", "esc dashboard", "q quit"))
	return b.String()
}

func (m Model) viewDetail() string {
	if m.loading {
		return m.spin.View() + " loading..."
	}
	item := m.detail
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(item.Title) + "\n")
	b.WriteString(fmt.Sprintf("%s · %s · %s · %s\n\n",
		item.Type, item.Category, item.Color, item.Status))
	b.WriteString(item.Description + "\n\n")
	b.WriteString(faint.Render("Location: ") + item.Location + "\n")
	b.WriteString(faint.Render("Posted:   ") + item.CreatedAt.Format("2 Jan 2006") + "\n\n")

	if m.contact && m.dialog != nil {
		b.WriteString("Contact the poster · e email, w whatsapp, s sms, enter send, esc cancel\n")
		if m.dialog.State() == contact.StateChannelSelected || m.dialog.State() == contact.StateSubmitting {
			b.WriteString(faint.Render("Message: ") + m.dialog.Message() + "\n")
		}
		return b.String()
	}

	b.WriteString(m.help("m contact poster", "esc back", "q quit"))
	return b.String()
}

func (m Model) viewPost() string {
	if m.loading {
		return m.spin.View() + " posting..."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Report a %s item\n\n", m.postType))
	b.WriteString(m.post.View(m.theme))
	b.WriteString("\n")
	b.WriteString(m.help("enter from last field: submit", "ctrl+g use current location", "esc dashboard"))
	return b.String()
}

func (m Model) viewMine() string {
	if m.loading {
		return m.spin.View() + " loading..."
	}
	var b strings.Builder
	b.WriteString("My items · tab: " + string(m.mineTab) + "\n\n")

	visible := m.visibleMine()
	if len(visible) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("nothing here yet") + "\n")
	}
	for i, item := range visible {
		b.WriteString(m.itemRow(item, i == m.mineCur) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help("tab switch view", "r resolve/reactivate", "enter open", "esc dashboard"))
	return b.String()
}
