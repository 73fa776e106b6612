package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ListMeta describes where a rendered slice sits in the server-side list.
type ListMeta struct {
	Total    int
	Page     int
	PageSize int
}

func dishesView(dishes []domain.Dish, meta ListMeta, s styles) string {
	rows := make([][]string, 0, len(dishes))
	for _, dish := range dishes {
		rows = append(rows, []string{id(dish.ID), dish.Name, categoryName(dish.Category), money(dish.Price)})
	}

	return listView("Dishes", len(dishes), meta, []string{"ID", "NAME", "CATEGORY", "PRICE"}, rows, "No dishes found.", s)
}

func ingredientsView(ingredients []domain.Ingredient, meta ListMeta, s styles) string {
	rows := make([][]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		rows = append(rows, []string{id(ingredient.ID), ingredient.Name, money(ingredient.Price), ingredient.Unit})
	}

	return listView("Ingredients", len(ingredients), meta, []string{"ID", "NAME", "PRICE", "UNIT"}, rows, "No ingredients found.", s)
}

func categoriesView(categories []domain.Category, s styles) string {
	rows := make([][]string, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, []string{id(category.ID), category.Name, category.Description})
	}

	meta := ListMeta{Total: len(categories)}
	return listView("Categories", len(categories), meta, []string{"ID", "NAME", "DESCRIPTION"}, rows, "No categories found.", s)
}

func mealRecordsView(records []domain.MealRecord, meta ListMeta, now time.Time, s styles) string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			id(record.ID),
			formatWhen(record.CreatedAt, now),
			strconv.Itoa(len(record.Dishes)),
			money(record.TotalPrice),
			truncate(record.Thoughts, 40),
		})
	}

	return listView("Meal records", len(records), meta, []string{"ID", "WHEN", "DISHES", "TOTAL", "THOUGHTS"}, rows, "No meal records yet.", s)
}

func listView(title string, shown int, meta ListMeta, headers []string, rows [][]string, emptyText string, s styles) string {
	lines := []string{
		s.title.Render(title),
		s.header.Render(countLine(shown, meta)),
	}

	if len(rows) == 0 {
		lines = append(lines, s.empty.Render(emptyText))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, renderTable(headers, rows, s))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func countLine(shown int, meta ListMeta) string {
	line := fmt.Sprintf("showing %d of %d", shown, meta.Total)
	if meta.Page > 0 && meta.PageSize > 0 {
		line += fmt.Sprintf(" (page %d, %d per page)", meta.Page, meta.PageSize)
	}
	return line
}

func renderTable(headers []string, rows [][]string, s styles) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.tableHead
			}
			return s.tableCell
		})

	return t.String()
}

func dishView(dish domain.Dish, s styles) string {
	lines := []string{
		s.name.Render(fmt.Sprintf("%s (#%d)", dish.Name, dish.ID)),
		s.price.Render("price: " + money(dish.Price)),
		s.detail.Render("category: " + categoryName(dish.Category)),
	}
	if dish.Description != "" {
		lines = append(lines, s.detail.Render(dish.Description))
	}
	if dish.CookingLink != "" {
		lines = append(lines, s.detail.Render("recipe: "+dish.CookingLink))
	}

	if len(dish.Ingredients) == 0 {
		lines = append(lines, s.section.Render(s.empty.Render("No ingredients listed.")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([][]string, 0, len(dish.Ingredients))
	for _, item := range dish.Ingredients {
		name, unit := "#"+id(item.IngredientID), ""
		if item.Ingredient != nil {
			name, unit = item.Ingredient.Name, item.Ingredient.Unit
		}
		rows = append(rows, []string{name, strings.TrimSpace(quantity(item.Quantity) + " " + unit)})
	}
	lines = append(lines, s.section.Render(renderTable([]string{"INGREDIENT", "QUANTITY"}, rows, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func mealRecordView(record domain.MealRecord, now time.Time, s styles) string {
	lines := []string{
		s.name.Render(fmt.Sprintf("Meal record #%d", record.ID)),
		s.header.Render(formatWhen(record.CreatedAt, now)),
		s.price.Render("total: " + money(record.TotalPrice)),
	}
	if record.Thoughts != "" {
		lines = append(lines, s.detail.Render(record.Thoughts))
	}

	rows := make([][]string, 0, len(record.Dishes))
	for _, item := range record.Dishes {
		name := "#" + id(item.DishID)
		if item.Dish != nil {
			name = item.Dish.Name
		}
		rows = append(rows, []string{name, strconv.Itoa(item.Quantity)})
	}
	if len(rows) > 0 {
		lines = append(lines, s.section.Render(renderTable([]string{"DISH", "QTY"}, rows, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func cartView(cart *domain.Cart, s styles) string {
	items := cart.Items()
	lines := []string{
		s.title.Render("Cart"),
		s.header.Render(fmt.Sprintf("dishes: %d  total: %s", cart.Count(), money(cart.TotalPrice()))),
	}

	if len(items) == 0 {
		lines = append(lines, s.empty.Render("Cart is empty."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{id(item.ID), item.Name, categoryName(item.Category), money(item.Price)})
	}
	lines = append(lines, renderTable([]string{"ID", "NAME", "CATEGORY", "PRICE"}, rows, s))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// SessionInfo is what `auth status` knows about the stored session.
type SessionInfo struct {
	Authenticated bool
	User          *domain.User
	ExpiresAt     time.Time
	Now           time.Time
}

func sessionView(info SessionInfo, s styles) string {
	if !info.Authenticated {
		return s.empty.Render("Not logged in. Run `fc auth login` to sign in.")
	}

	lines := []string{s.title.Render("Session")}
	if info.User != nil {
		lines = append(lines, s.name.Render(userTitle(*info.User)))
		if info.User.Email != "" {
			lines = append(lines, s.detail.Render("email: "+info.User.Email))
		}
	} else {
		lines = append(lines, s.detail.Render("profile: not cached (run `fc auth profile`)"))
	}

	lines = append(lines, expiryLine(info.ExpiresAt, info.Now, s))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func userTitle(user domain.User) string {
	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}
	return fmt.Sprintf("%s (%s)", strings.TrimSpace(user.Username), role)
}

func expiryLine(expiresAt, now time.Time, s styles) string {
	if expiresAt.IsZero() {
		return s.detail.Render("token: no expiry")
	}
	if now.IsZero() {
		return s.detail.Render("token: expires " + expiresAt.Format(time.RFC3339))
	}
	if !now.Before(expiresAt) {
		return s.warning.Render("token: expired")
	}
	return s.detail.Render("token: " + formatRemaining(expiresAt.Sub(now)))
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 24*time.Hour {
		hours := int(math.Ceil(remaining.Hours()))
		if hours < 1 {
			hours = 1
		}
		return fmt.Sprintf("expires in %d %s", hours, plural(hours, "hour"))
	}

	days := int(math.Ceil(remaining.Hours() / 24))
	return fmt.Sprintf("expires in %d %s", days, plural(days, "day"))
}

func formatWhen(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := at.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return "today " + at.Format("15:04")
	}

	return at.Format("02 Jan 2006 15:04")
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

func categoryName(category *domain.Category) string {
	if category == nil || category.Name == "" {
		return "-"
	}
	return category.Name
}

func id(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func quantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(text string, max int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max-1]) + "…"
}
