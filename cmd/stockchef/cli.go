package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/diewo77/stockchef/i18n"
	"github.com/diewo77/stockchef/internal/client"
	"github.com/diewo77/stockchef/internal/config"
	"github.com/diewo77/stockchef/internal/inventory"
	"github.com/diewo77/stockchef/internal/menus"
	"github.com/diewo77/stockchef/internal/models"
	"github.com/diewo77/stockchef/internal/policy"
)

var errUsage = errors.New("usage")

type cli struct {
	cfg *config.Config
	api *client.Client
	out io.Writer
	now func() time.Time
}

type command struct {
	name string
	help string
	run  func(c *cli, ctx context.Context, args []string) error
}

var commands = []command{
	{"login", "login -email E [-password P]", (*cli).login},
	{"logout", "logout", (*cli).logout},
	{"whoami", "whoami", (*cli).whoami},
	{"produits", "produits [-page N] [-size N] [-search S] [-all]", (*cli).produits},
	{"alertes", "alertes", (*cli).alertes},
	{"consommer", "consommer -id ID -quantite Q [-motif M]", (*cli).consommer},
	{"menus", "menus [-page N] [-size N] [-search S] [-all]", (*cli).menus},
	{"menu", "menu ID", (*cli).menu},
	{"menu-retirer", "menu-retirer -id ID -produit PID", (*cli).menuRetirer},
	{"menu-confirmer", "menu-confirmer ID", transition(menus.Confirmer)},
	{"menu-annuler", "menu-annuler ID", transition(menus.Annuler)},
	{"menu-realiser", "menu-realiser ID", transition(menus.Realiser)},
	{"tableau", "tableau", (*cli).tableau},
	{"rapport", "rapport [-from YYYY-MM-DD] [-to YYYY-MM-DD]", (*cli).rapport},
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(c, ctx, args[1:])
		}
	}
	return errUsage
}

func (c *cli) usage() {
	fmt.Fprintln(os.Stderr, "usage: stockchef <command> [flags]")
	for _, cmd := range commands {
		fmt.Fprintf(os.Stderr, "  %s\n", cmd.help)
	}
}

func (c *cli) lang() string { return c.cfg.Client.Lang }

func (c *cli) today() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *cli) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func pageFlags(fs *flag.FlagSet) (*client.PageQuery, *bool) {
	q := &client.PageQuery{}
	fs.IntVar(&q.Page, "page", 0, "zero-based page")
	fs.IntVar(&q.Size, "size", models.DefaultPageSize, "page size")
	fs.StringVar(&q.Search, "search", "", "name filter")
	all := fs.Bool("all", false, "follow every page from -page on")
	return q, all
}

// walk shows the page q asks for and, with all, keeps moving to the next
// page until the last one. It returns the pager of the last page shown.
// A search asking for a page past its results starts over at page 0.
func walk[T any](ctx context.Context, q client.PageQuery, all bool,
	fetch func(context.Context, client.PageQuery) (models.Page[T], error), show func([]T)) (client.Pager, error) {
	for {
		page, err := fetch(ctx, q)
		if err != nil {
			return client.Pager{}, err
		}
		pg := client.PagerFor(page)
		if q.Search != "" && len(page.Content) == 0 && pg.Page > pg.LastPage() {
			q = pg.Search().Query(q.Search)
			continue
		}
		show(page.Content)
		if !all || !pg.CanNext() {
			return pg, nil
		}
		q = pg.Next().Query(q.Search)
	}
}

// pageFooter prints the position and the commands reaching the pages
// around it.
func (c *cli) pageFooter(cmd, search string, pg client.Pager) {
	fmt.Fprintf(c.out, "page %d/%d (%d %s)\n", pg.Page+1, pg.LastPage()+1, pg.Total, cmd)
	var nav []string
	if pg.CanPrev() {
		nav = append(nav, "précédente: "+pageCommand(cmd, pg.Prev().Query(search)))
	}
	if pg.CanNext() {
		nav = append(nav, "suivante: "+pageCommand(cmd, pg.Next().Query(search)))
	}
	if len(nav) > 0 {
		fmt.Fprintln(c.out, strings.Join(nav, " | "))
	}
}

func pageCommand(cmd string, q client.PageQuery) string {
	out := fmt.Sprintf("stockchef %s -page %d", cmd, q.Page)
	if q.Size != models.DefaultPageSize {
		out += fmt.Sprintf(" -size %d", q.Size)
	}
	if q.Search != "" {
		out += fmt.Sprintf(" -search %q", q.Search)
	}
	return out
}

func argID(args []string) (uint, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return uint(id), nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("STOCKCHEF_PASSWORD"), "account password")
	if err := fs.Parse(args); err != nil || *email == "" {
		return errUsage
	}
	st, err := c.api.Login(ctx, *email, *password)
	if errors.Is(err, client.ErrUnauthorized) {
		return errors.New(i18n.T(c.lang(), "invalid_credentials"))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "connecté: %s (%s)\n", st.Email, st.Role)
	return nil
}

func (c *cli) logout(ctx context.Context, args []string) error {
	if err := c.api.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "déconnecté")
	return nil
}

func (c *cli) whoami(ctx context.Context, args []string) error {
	st := c.api.Session().State()
	if !st.LoggedIn() {
		return client.ErrUnauthorized
	}
	caps := make([]string, 0, 4)
	for _, cp := range policy.Capabilities(st.Role) {
		caps = append(caps, string(cp))
	}
	fmt.Fprintf(c.out, "%s <%s>\nrôle: %s\ndroits: %s\n", st.FullName, st.Email, st.Role, strings.Join(caps, ", "))
	return nil
}

func (c *cli) produits(ctx context.Context, args []string) error {
	fs := newFlags("produits")
	q, all := pageFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	pg, err := walk(ctx, *q, *all, c.api.ListProduits, c.printProduits)
	if err != nil {
		return err
	}
	c.pageFooter("produits", q.Search, pg)
	return nil
}

func (c *cli) printProduits(list []models.Product) {
	today := c.today()
	tw := c.table()
	fmt.Fprintln(tw, "ID\tNOM\tSTOCK\tPRIX\tPÉREMPTION\tSTATUT\tALERTE")
	for _, p := range list {
		alerte := ""
		if p.LowStock() {
			alerte = i18n.T(c.lang(), "stock_low")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Nom, strconv.FormatFloat(p.QuantiteStock, 'f', -1, 64), p.Unite,
			menus.FormatEUR(menus.Amount(p.PrixUnitaire)), p.DatePeremption,
			inventory.ClassifyProduct(p, today).Label(c.lang()), alerte)
	}
	tw.Flush()
}

func (c *cli) alertes(ctx context.Context, args []string) error {
	rep, err := c.api.Alertes(ctx)
	if err != nil {
		return err
	}
	s := rep.Summary
	fmt.Fprintf(c.out, "%d produits: %d périmés, %d proches, %d en stock bas\n",
		s.TotalProduits, s.Perimes, s.Proches, s.StockBas)
	for _, group := range []struct {
		title string
		list  []models.Product
	}{
		{inventory.StatusPerime.Label(c.lang()), rep.Perimes},
		{inventory.StatusProche.Label(c.lang()), rep.Proches},
		{i18n.T(c.lang(), "stock_low"), rep.StockBas},
	} {
		if len(group.list) == 0 {
			continue
		}
		fmt.Fprintf(c.out, "\n%s\n", group.title)
		c.printProduits(group.list)
	}
	return nil
}

func (c *cli) consommer(ctx context.Context, args []string) error {
	fs := newFlags("consommer")
	id := fs.Uint("id", 0, "product id")
	raw := fs.String("quantite", "", "quantity to withdraw")
	motif := fs.String("motif", "", "reason")
	if err := fs.Parse(args); err != nil || *id == 0 {
		return errUsage
	}
	p, err := c.api.GetProduit(ctx, *id)
	if err != nil {
		return err
	}
	q, v := inventory.ValidateConsumption(p, *raw)
	if !v.Empty() {
		return errors.New(strings.Join(v.Messages(c.lang()), "; "))
	}
	p, err = c.api.ConsommerProduit(ctx, p.ID, q, *motif)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s: reste %s %s\n", p.Nom, strconv.FormatFloat(p.QuantiteStock, 'f', -1, 64), p.Unite)
	return nil
}

func (c *cli) menus(ctx context.Context, args []string) error {
	fs := newFlags("menus")
	q, all := pageFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	show := func(list []client.Menu) { c.printMenus(list, c.cfg.Kitchen.MenuBudgetThreshold) }
	pg, err := walk(ctx, *q, *all, c.api.ListMenus, show)
	if err != nil {
		return err
	}
	c.pageFooter("menus", q.Search, pg)
	return nil
}

func (c *cli) printMenus(list []client.Menu, threshold float64) {
	tw := c.table()
	fmt.Fprintln(tw, "ID\tNOM\tSERVICE\tSTATUT\tCOÛT\tBUDGET\tMARGE")
	for _, m := range list {
		cost := m.Cost()
		marge := "-"
		if mg, ok := menus.Margin(m.PrixVente, cost); ok {
			marge = menus.FormatEUR(mg)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.Nom, m.DateService, m.Statut, menus.FormatEUR(cost),
			menus.ClassifyBudget(cost, menus.Amount(threshold)).Label(c.lang()), marge)
	}
	tw.Flush()
}

func (c *cli) menu(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}
	m, err := c.api.GetMenu(ctx, id)
	if err != nil {
		return err
	}
	c.printMenu(m)
	return nil
}

func (c *cli) printMenu(m client.Menu) {
	fmt.Fprintf(c.out, "%s [%s]\n", m.Nom, m.Statut)
	tw := c.table()
	fmt.Fprintln(tw, "PRODUIT\tQUANTITÉ\tPRIX\tCOÛT")
	for _, it := range m.Items {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", it.Nom,
			strconv.FormatFloat(it.Quantite, 'f', -1, 64), it.Unite,
			menus.FormatEUR(menus.Amount(it.PrixUnitaire)), menus.FormatEUR(menus.LineCost(it)))
	}
	tw.Flush()
	cost := m.Cost()
	fmt.Fprintf(c.out, "total: %s (%s)\n", menus.FormatEUR(cost),
		menus.ClassifyBudget(cost, menus.Amount(c.cfg.Kitchen.MenuBudgetThreshold)).Label(c.lang()))
	if pct, ok := menus.MarginPercent(m.PrixVente, cost); ok {
		mg, _ := menus.Margin(m.PrixVente, cost)
		fmt.Fprintf(c.out, "marge: %s (%s %%)\n", menus.FormatEUR(mg), pct.StringFixed(2))
	}
	if actions := c.workflow().Allowed(m.Statut); len(actions) > 0 && policy.CanManageMenus(c.api.Session().Role()) {
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = "menu-" + string(a)
		}
		fmt.Fprintf(c.out, "actions: %s\n", strings.Join(names, ", "))
	}
}

func (c *cli) menuRetirer(ctx context.Context, args []string) error {
	fs := newFlags("menu-retirer")
	id := fs.Uint("id", 0, "menu id")
	produit := fs.Uint("produit", 0, "product id of the lines to remove")
	if err := fs.Parse(args); err != nil || *id == 0 || *produit == 0 {
		return errUsage
	}
	if !policy.CanManageMenus(c.api.Session().Role()) {
		return errors.New(i18n.T(c.lang(), "forbidden"))
	}
	m, err := c.api.RemoveIngredient(ctx, *id, *produit)
	if err != nil {
		return err
	}
	c.printMenu(m)
	return nil
}

func (c *cli) workflow() menus.Workflow {
	p, err := menus.ParseCancelPolicy(c.cfg.Kitchen.CancelPolicy)
	if err != nil {
		p = menus.CancelToAnnule
	}
	return menus.Workflow{Cancel: p}
}

func transition(t menus.Transition) func(c *cli, ctx context.Context, args []string) error {
	return func(c *cli, ctx context.Context, args []string) error {
		id, err := argID(args)
		if err != nil {
			return err
		}
		if !policy.CanManageMenus(c.api.Session().Role()) {
			return errors.New(i18n.T(c.lang(), "forbidden"))
		}
		call := map[menus.Transition]func(context.Context, uint) (client.Menu, error){
			menus.Confirmer: c.api.ConfirmerMenu,
			menus.Annuler:   c.api.AnnulerMenu,
			menus.Realiser:  c.api.RealiserMenu,
		}[t]
		m, err := call(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s: %s\n", m.Nom, m.Statut)
		return nil
	}
}

// tableau prints the dashboard: alert counts and the confirmed menus,
// classified against the dashboard threshold.
func (c *cli) tableau(ctx context.Context, args []string) error {
	rep, err := c.api.Alertes(ctx)
	if err != nil {
		return err
	}
	s := rep.Summary
	fmt.Fprintf(c.out, "stock: %d produits, %d périmés, %d proches, %d en stock bas\n",
		s.TotalProduits, s.Perimes, s.Proches, s.StockBas)

	page, err := c.api.ListMenus(ctx, client.PageQuery{Size: models.MaxPageSize})
	if err != nil {
		return err
	}
	var confirmed []client.Menu
	for _, m := range page.Content {
		if m.Statut == models.MenuConfirme {
			confirmed = append(confirmed, m)
		}
	}
	fmt.Fprintf(c.out, "\nmenus confirmés: %d\n", len(confirmed))
	if len(confirmed) > 0 {
		c.printMenus(confirmed, c.cfg.Kitchen.DashboardBudgetThreshold)
	}
	return nil
}

// rapport prints the cost report. The range defaults to the current month
// up to today.
func (c *cli) rapport(ctx context.Context, args []string) error {
	now := c.today()
	fs := newFlags("rapport")
	from := fs.String("from", models.FormatDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)), "first service date")
	to := fs.String("to", models.FormatDate(now), "last service date")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if !policy.CanViewReports(c.api.Session().Role()) {
		return errors.New(i18n.T(c.lang(), "forbidden"))
	}
	rep, err := c.api.Rapport(ctx, *from, *to)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "du %s au %s: %d menus\n", *from, *to, len(rep.Menus))
	tw := c.table()
	fmt.Fprintln(tw, "ID\tNOM\tSERVICE\tTOTAL\tBUDGET")
	for _, l := range rep.Menus {
		status := menus.BudgetOK
		if l.Depasse {
			status = menus.BudgetDepassement
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			l.ID, l.Nom, l.Date, menus.FormatEUR(menus.Amount(l.Total)), status.Label(c.lang()))
	}
	tw.Flush()
	fmt.Fprintf(c.out, "coût moyen: %s, dépassements: %d\n",
		menus.FormatEUR(menus.Amount(rep.CoutMoyen)), rep.NbDepassements)
	return nil
}
