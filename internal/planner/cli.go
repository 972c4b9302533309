package planner

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"slices"
	"strconv"
	"text/tabwriter"
	"time"

	"sandgrund/pkg/filter"
	"sandgrund/pkg/model"

	"github.com/urfave/cli/v2"
)

const (
	EnvAPIURL = "SANDGRUND_API_URL"
	EnvToken  = "SANDGRUND_TOKEN"

	DefaultAPIURL = "http://localhost:8000"

	timeLayout = "2006-01-02 15:04"
)

// API is everything the commands call on the server. client.Fetcher
// implements it.
type API interface {
	Source
	LogIn(ctx context.Context, creds model.Credentials) *model.Session
	SearchBookings(ctx context.Context, year int, criteria url.Values) []model.Booking
	ResetToken(ctx context.Context, email string) string
	UpdateBooking(ctx context.Context, id string, update model.BookingUpdate) *model.Booking
	CreateGuide(ctx context.Context, guide model.Guide) *model.Guide
	UpdateGuide(ctx context.Context, id string, update model.GuideUpdate) *model.Guide
	DeleteGuide(ctx context.Context, id string) bool
	UploadImage(ctx context.Context, id, filename string, content io.Reader) *model.Guide
}

// Connector builds an API for a base URL and bearer token. Failures of
// individual calls are reported through notify.
type Connector func(baseURL, token string, notify func(string)) API

type Planner struct {
	store    *Store
	connect  Connector
	location *time.Location
	now      func() time.Time
}

func New(store *Store, connect Connector, loc *time.Location) *Planner {
	if loc == nil {
		loc = time.Local
	}
	return &Planner{store: store, connect: connect, location: loc, now: time.Now}
}

// criterionFlags maps CLI flags onto filter fields.
var criterionFlags = []struct {
	flag, field, usage string
}{
	{"guide", filter.FieldGuide, "exact guide"},
	{"title", filter.FieldTitle, "substring of the title (case-sensitive)"},
	{"status", filter.FieldStatus, `exact status, "All" matches any`},
	{"from", filter.FieldStart, "bookings starting on or after this day (YYYY-MM-DD)"},
	{"contact-person", filter.FieldContactPerson, "substring of the contact person"},
	{"contact-phone", filter.FieldContactPhone, "exact contact phone"},
	{"contact-email", filter.FieldContactEmail, "exact contact e-mail"},
	{"snacks", filter.FieldSnacks, `true, false or "All"`},
}

func (p *Planner) App() *cli.App {
	yearFlag := &cli.IntFlag{Name: "year", Aliases: []string{"y"}, Usage: "calendar year, defaults to the current one"}

	searchFlags := []cli.Flag{yearFlag, &cli.BoolFlag{Name: "remote", Usage: "filter on the server instead of locally"}}
	for _, cf := range criterionFlags {
		searchFlags = append(searchFlags, &cli.StringFlag{Name: cf.flag, Usage: cf.usage})
	}

	return &cli.App{
		Name:  "planner",
		Usage: "plan guided tours from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Value: DefaultAPIURL, EnvVars: []string{EnvAPIURL}, Usage: "base URL of the API"},
			&cli.StringFlag{Name: "token", EnvVars: []string{EnvToken}, Usage: "bearer token from login"},
		},
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "log in and print a token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: p.login,
			},
			{
				Name:   "bookings",
				Usage:  "list the bookings of a year",
				Flags:  []cli.Flag{yearFlag},
				Action: p.bookings,
			},
			{
				Name:   "search",
				Usage:  "filter the bookings of a year",
				Flags:  searchFlags,
				Action: p.search,
			},
			{
				Name:   "years",
				Usage:  "list every year with its number of bookings",
				Action: p.years,
			},
			{
				Name:  "guides",
				Usage: "list guides",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "active", Usage: "only active guides"},
				},
				Action: p.guides,
				Subcommands: []*cli.Command{
					{
						Name:  "create",
						Usage: "add a guide",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "name", Required: true, Usage: "full name"},
							&cli.StringFlag{Name: "email", Required: true},
							&cli.StringFlag{Name: "photo", Usage: "photo URL"},
						},
						Action: p.createGuide,
					},
					{
						Name:  "update",
						Usage: "change the fields given as flags",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "id", Required: true, Usage: "guide id"},
							&cli.StringFlag{Name: "name", Usage: "full name"},
							&cli.StringFlag{Name: "email"},
							&cli.StringFlag{Name: "photo", Usage: "photo URL"},
							&cli.BoolFlag{Name: "active", Usage: "reactivate (true) or deactivate (false)"},
						},
						Action: p.updateGuide,
					},
					{
						Name:  "delete",
						Usage: "deactivate a guide",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "id", Required: true, Usage: "guide id"},
						},
						Action: p.deleteGuide,
					},
				},
			},
			{
				Name:  "reset-password",
				Usage: "issue a password reset token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
				},
				Action: p.resetPassword,
			},
			{
				Name:      "upload",
				Usage:     "upload a guide photo",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true, Usage: "guide id"},
				},
				Action: p.upload,
			},
			{
				Name:  "assign",
				Usage: "assign a guide to a booking",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true, Usage: "booking id"},
					&cli.StringFlag{Name: "guide", Required: true},
					&cli.StringFlag{Name: "guide-email", Usage: "notify the guide at this address"},
				},
				Action: p.assign,
			},
		},
	}
}

func (p *Planner) api(c *cli.Context) API {
	errOut := c.App.ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}
	return p.connect(c.String("api-url"), c.String("token"), func(msg string) {
		fmt.Fprintln(errOut, "error:", msg)
	})
}

func (p *Planner) year(c *cli.Context) int {
	if c.IsSet("year") {
		return c.Int("year")
	}
	return p.now().In(p.location).Year()
}

func (p *Planner) login(c *cli.Context) error {
	session := p.api(c).LogIn(c.Context, model.Credentials{Email: c.String("email"), Password: c.String("password")})
	if session == nil {
		return cli.Exit("login failed", 1)
	}
	fmt.Fprintln(c.App.Writer, session.Token)
	return nil
}

func (p *Planner) bookings(c *cli.Context) error {
	year := p.year(c)
	if err := Load(c.Context, p.api(c), p.store, year); err != nil && !IsIncomplete(err) {
		return err
	}
	return p.printBookings(c.App.Writer, p.store.Bookings(year))
}

func (p *Planner) search(c *cli.Context) error {
	year := p.year(c)
	api := p.api(c)

	if c.Bool("remote") {
		q := url.Values{}
		for _, cf := range criterionFlags {
			if c.IsSet(cf.flag) {
				q.Set(cf.field, c.String(cf.flag))
			}
		}
		return p.printBookings(c.App.Writer, api.SearchBookings(c.Context, year, q))
	}

	criteria := filter.Criteria{}
	for _, cf := range criterionFlags {
		if c.IsSet(cf.flag) {
			criteria[cf.field] = c.String(cf.flag)
		}
	}

	if err := Load(c.Context, api, p.store, year); err != nil && !IsIncomplete(err) {
		return err
	}
	matches, err := p.store.Filter(year, criteria)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	return p.printBookings(c.App.Writer, matches)
}

func (p *Planner) years(c *cli.Context) error {
	if err := LoadAll(c.Context, p.api(c), p.store); err != nil {
		if IsIncomplete(err) {
			return cli.Exit(err.Error(), 1)
		}
		return err
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tBOOKINGS")
	for _, doc := range p.store.YearDocs() {
		fmt.Fprintf(tw, "%d\t%d\n", doc.Year, len(doc.Bookings))
	}
	return tw.Flush()
}

func (p *Planner) guides(c *cli.Context) error {
	guides := p.api(c).Guides(c.Context)
	if guides == nil {
		return cli.Exit("no guides loaded", 1)
	}
	p.store.SetGuides(guides)

	listed := p.store.Guides()
	if c.Bool("active") {
		listed = slices.DeleteFunc(listed, func(g model.Guide) bool { return !g.Active })
	}
	return p.printGuides(c.App.Writer, listed)
}

func (p *Planner) printGuides(w io.Writer, guides []model.Guide) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tSTATE")
	for _, g := range guides {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.ID, g.FullName, g.Email, g.State())
	}
	return tw.Flush()
}

func (p *Planner) createGuide(c *cli.Context) error {
	guide := p.api(c).CreateGuide(c.Context, model.Guide{
		FullName: c.String("name"),
		Email:    c.String("email"),
		Photo:    c.String("photo"),
	})
	if guide == nil {
		return cli.Exit("guide not created", 1)
	}
	p.store.UpsertGuide(*guide)
	return p.printGuides(c.App.Writer, []model.Guide{*guide})
}

func (p *Planner) updateGuide(c *cli.Context) error {
	var update model.GuideUpdate
	if c.IsSet("name") {
		name := c.String("name")
		update.FullName = &name
	}
	if c.IsSet("email") {
		email := c.String("email")
		update.Email = &email
	}
	if c.IsSet("photo") {
		photo := c.String("photo")
		update.Photo = &photo
	}
	if c.IsSet("active") {
		active := c.Bool("active")
		update.Active = &active
	}
	if update.IsEmpty() {
		return cli.Exit("nothing to update", 2)
	}

	guide := p.api(c).UpdateGuide(c.Context, c.String("id"), update)
	if guide == nil {
		return cli.Exit("guide not updated", 1)
	}
	p.store.UpsertGuide(*guide)
	return p.printGuides(c.App.Writer, []model.Guide{*guide})
}

func (p *Planner) deleteGuide(c *cli.Context) error {
	id := c.String("id")
	if !p.api(c).DeleteGuide(c.Context, id) {
		return cli.Exit("guide not deleted", 1)
	}
	for _, g := range p.store.Guides() {
		if g.ID == id {
			g.Active = false
			p.store.UpsertGuide(g)
		}
	}
	fmt.Fprintf(c.App.Writer, "guide %s deactivated\n", id)
	return nil
}

func (p *Planner) resetPassword(c *cli.Context) error {
	token := p.api(c).ResetToken(c.Context, c.String("email"))
	if token == "" {
		return cli.Exit("no reset token issued", 1)
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}

func (p *Planner) upload(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("missing FILE argument", 2)
	}
	f, err := os.Open(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer f.Close()

	guide := p.api(c).UploadImage(c.Context, c.String("id"), path, f)
	if guide == nil {
		return cli.Exit("upload failed", 1)
	}
	p.store.UpsertGuide(*guide)
	fmt.Fprintln(c.App.Writer, guide.Photo)
	return nil
}

func (p *Planner) assign(c *cli.Context) error {
	guide := c.String("guide")
	update := model.BookingUpdate{Guide: &guide, GuideEmail: c.String("guide-email")}

	booking := p.api(c).UpdateBooking(c.Context, c.String("id"), update)
	if booking == nil {
		return cli.Exit("assignment failed", 1)
	}
	p.store.UpsertBooking(*booking)
	return p.printBookings(c.App.Writer, []model.Booking{*booking})
}

func (p *Planner) printBookings(w io.Writer, bookings []model.Booking) error {
	sorted := slices.Clone(bookings)
	slices.SortStableFunc(sorted, func(a, b model.Booking) int { return a.Start.Compare(b.Start) })

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTART\tTITLE\tSTATUS\tGUIDE\tPAX\tSNACKS")
	for _, b := range sorted {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			b.ID, b.Start.In(p.location).Format(timeLayout), b.Title, b.Status, b.Guide,
			b.Participants, strconv.FormatBool(b.Snacks))
	}
	fmt.Fprintf(tw, "\n%d bookings\n", len(sorted))
	return tw.Flush()
}
