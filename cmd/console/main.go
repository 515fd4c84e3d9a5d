package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"bgmsons/internal/console/api"
	"bgmsons/internal/console/dashboard"
	"bgmsons/internal/console/form"
	"bgmsons/internal/console/guard"
	"bgmsons/internal/console/session"

	"golang.org/x/term"
)

var (
	version   string
	buildDate string
)

type console struct {
	api       *api.Client
	session   *session.Store
	dashboard *dashboard.Controller
	reader    *bufio.Reader
}

func (c *console) prompt(label string) string {
	fmt.Print(label)
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (c *console) promptSecret(label string) string {
	fmt.Print(label)
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(pass))
}

// authorized runs the route guard for one command. A fresh guard is
// built per invocation since a settled guard never re-checks.
func (c *console) authorized(ctx context.Context) bool {
	g := guard.New(c.session, c.api)
	if g.Check(ctx) == guard.Authorized {
		return true
	}
	fmt.Println("Not logged in. Run 'login' first.")
	return false
}

func (c *console) login(ctx context.Context) {
	username := c.prompt("Username: ")
	password := c.promptSecret("Password: ")

	token, err := c.api.Login(ctx, username, password)
	if err != nil {
		fmt.Println("Login failed:", err)
		return
	}
	if err := c.session.SetToken(token); err != nil {
		fmt.Println("Could not persist the session:", err)
		return
	}
	fmt.Println("Logged in.")
}

func (c *console) logout() {
	if err := c.session.Clear(); err != nil {
		fmt.Println("Could not clear the session:", err)
		return
	}
	fmt.Println("Logged out.")
}

func (c *console) list(ctx context.Context) {
	if err := c.dashboard.Load(ctx); err != nil {
		fmt.Println("Could not load products:", err)
		return
	}
	c.render()
}

func (c *console) render() {
	products := c.dashboard.FilteredView()
	if search := c.dashboard.SearchTerm(); search != "" {
		fmt.Printf("search: %q\n", search)
	}
	if cat := c.dashboard.CategoryFilter(); cat != dashboard.AllCategories {
		fmt.Printf("category: %s\n", cat)
	}
	if len(products) == 0 {
		fmt.Println("No products match.")
		return
	}
	for _, p := range products {
		fmt.Printf("%-12s %-10s %-16s %s\n", p.ID, p.Category, p.Subcategory, p.Name)
	}
	fmt.Printf("%d product(s)\n", len(products))
}

func (c *console) show(ctx context.Context, id string) {
	product, err := c.api.GetProduct(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			fmt.Println("Product not found.")
			return
		}
		fmt.Println("Could not fetch the product:", err)
		return
	}

	fmt.Printf("ID:            %s\n", product.ID)
	fmt.Printf("Name:          %s\n", product.Name)
	fmt.Printf("Category:      %s\n", product.Category)
	fmt.Printf("Subcategory:   %s\n", product.Subcategory)
	fmt.Printf("Created:       %s\n", product.Created)
	fmt.Printf("Images:        %d\n", len(product.Images))
	fmt.Printf("Description:   %s\n", product.Description)
	fmt.Printf("Specification: %s\n", product.Specification)
	fmt.Println("Features:")
	for _, feature := range product.FeatureList() {
		fmt.Println("  -", feature)
	}
}

func (c *console) delete(ctx context.Context, id string) {
	c.dashboard.RequestDelete(id)
	answer := c.prompt(fmt.Sprintf("Delete product %s? [y/N]: ", id))
	if !strings.EqualFold(answer, "y") {
		c.dashboard.CancelDelete()
		fmt.Println("Cancelled.")
		return
	}
	if err := c.dashboard.ConfirmDelete(ctx); err != nil {
		fmt.Println("Delete failed:", err)
		return
	}
	fmt.Println("Product deleted.")
}

// fillForm prompts for every draft field. Blank input keeps the
// current value, so edits only need to touch what changes.
func (c *console) fillForm(f *form.Controller) {
	draft := f.Draft()

	fields := []struct {
		name, label, current string
	}{
		{"name", "Name", draft.Name},
		{"description", "Description", draft.Description},
		{"specification", "Specification", draft.Specification},
		{"features", "Features (use \\n between items)", draft.Features},
		{"created", "Created (YYYY-MM-DD)", draft.Created},
	}
	for _, field := range fields {
		value := c.prompt(fmt.Sprintf("%s [%s]: ", field.label, field.current))
		if value == "" {
			continue
		}
		if field.name == "features" {
			value = strings.ReplaceAll(value, `\n`, "\n")
		}
		if err := f.SetField(field.name, value); err != nil {
			fmt.Println("  ", err)
		}
	}

	var labels []string
	for _, opt := range f.Categories() {
		labels = append(labels, opt.Label)
	}
	value := c.prompt(fmt.Sprintf("Category (%s) [%s]: ", strings.Join(labels, ", "), draft.Category))
	chooseTag(value, f.AddCategoryTag, func(v string) { f.SetField("category", v) })

	value = c.prompt(fmt.Sprintf("Subcategory [%s]: ", draft.Subcategory))
	chooseTag(value, f.AddSubcategoryTag, func(v string) { f.SetField("subcategory", v) })

	for {
		path := c.prompt("Image file (blank to finish): ")
		if path == "" {
			break
		}
		if err := f.AddImageFromFile(path); err != nil {
			fmt.Println("  ", err)
		}
	}
}

// chooseTag applies a category or subcategory answer. New input
// becomes a new tag and is selected; input matching an existing option
// selects that option instead, since adding a duplicate is a no-op.
// Options store their value as the lower-cased label, so the trimmed
// lower-cased input is the canonical form either way.
func chooseTag(input string, add func(string) bool, selectValue func(string)) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}
	if add(input) {
		return
	}
	selectValue(strings.ToLower(input))
}

func (c *console) submit(ctx context.Context, f *form.Controller) {
	if err := f.Submit(ctx); err != nil {
		if msg := f.Err(); msg != "" {
			fmt.Println(msg)
			return
		}
		fmt.Println("Submit failed:", err)
		return
	}
	fmt.Println("Saved.")
}

func (c *console) add(ctx context.Context) {
	f := form.NewCreate(c.api, form.DefaultCategories(), form.DefaultSubcategories())
	c.fillForm(f)
	c.submit(ctx, f)
}

func (c *console) edit(ctx context.Context, id string) {
	f := form.NewEdit(c.api, id, form.DefaultCategories(), form.DefaultSubcategories())
	if err := f.LoadProduct(ctx); err != nil {
		if f.NotFound() {
			fmt.Println("Product not found.")
			return
		}
		fmt.Println("Could not load the product:", err)
		return
	}
	c.fillForm(f)
	c.submit(ctx, f)
}

func (c *console) help() {
	fmt.Println(`Commands:
  login                log in as the catalog admin
  logout               drop the stored session
  list                 load and show the catalog
  search <term>        filter by name or subcategory
  filter <category>    filter by category ('all' clears)
  clear                clear search and category filters
  show <id>            show one product in full
  add                  create a product
  edit <id>            edit a product
  delete <id>          delete a product (asks to confirm)
  help                 this text
  exit                 quit`)
}

func (c *console) repl(ctx context.Context) {
	for {
		line := c.prompt("bgmsons> ")
		args := strings.Fields(line)
		if len(args) == 0 {
			if line == "" && c.eof() {
				return
			}
			continue
		}

		switch args[0] {
		case "help":
			c.help()
		case "login":
			c.login(ctx)
		case "logout":
			c.logout()
		case "list":
			c.list(ctx)
		case "search":
			c.dashboard.SetSearchTerm(strings.Join(args[1:], " "))
			c.render()
		case "filter":
			if len(args) < 2 {
				fmt.Println("Usage: filter <category>")
				continue
			}
			c.dashboard.SetCategoryFilter(args[1])
			c.render()
		case "clear":
			c.dashboard.ClearFilters()
			c.render()
		case "show":
			if len(args) < 2 {
				fmt.Println("Usage: show <id>")
				continue
			}
			c.show(ctx, args[1])
		case "add":
			if c.authorized(ctx) {
				c.add(ctx)
			}
		case "edit":
			if len(args) < 2 {
				fmt.Println("Usage: edit <id>")
				continue
			}
			if c.authorized(ctx) {
				c.edit(ctx, args[1])
			}
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			if c.authorized(ctx) {
				c.delete(ctx, args[1])
			}
		case "exit", "quit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func (c *console) eof() bool {
	_, err := c.reader.Peek(1)
	return err != nil
}

func main() {
	var (
		baseURL     string
		sessionPath string
		showVer     bool
	)

	defaultSession, err := session.DefaultPath()
	if err != nil {
		defaultSession = "session.json"
	}

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "API base URL")
	flag.StringVar(&sessionPath, "session", defaultSession, "session file path")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("BGM Sons Admin Console\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	store := session.New(sessionPath)
	if err := store.Load(); err != nil {
		log.Fatal(err)
	}

	client := api.NewClient(baseURL, store)

	c := &console{
		api:       client,
		session:   store,
		dashboard: dashboard.NewController(client),
		reader:    bufio.NewReader(os.Stdin),
	}

	ctx := context.Background()

	g := guard.New(store, client)
	if g.Check(ctx) == guard.Authorized {
		fmt.Println("Session restored.")
	} else {
		fmt.Println("Not logged in. Mutations need 'login' first.")
	}

	c.repl(ctx)
}
