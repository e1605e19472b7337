// finratingctl drives the rating dashboard client from the command line:
// authentication, dataset upload, and the record/summary views.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/finrating/dashboard-client/internal/core/domain"
	"github.com/finrating/dashboard-client/internal/core/ports"
	"github.com/finrating/dashboard-client/internal/core/service"
	"github.com/finrating/dashboard-client/internal/infrastructure/async"
	"github.com/finrating/dashboard-client/internal/infrastructure/config"
	"github.com/finrating/dashboard-client/internal/infrastructure/tokenstore"
	"github.com/finrating/dashboard-client/internal/infrastructure/transport"
	"github.com/finrating/dashboard-client/pkg/logger"
)

type app struct {
	sessions  *service.SessionService
	uploads   *service.UploadService
	queries   *service.QueryService
	summaries *service.SummaryService
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	tokens, err := tokenstore.New(cfg.TokenFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.TokenFile).Msg("cannot open token store")
	}

	client := transport.New(transport.Options{
		BaseURL:        cfg.BaseURL,
		RequestTimeout: cfg.RequestTimeout,
		UploadTimeout:  cfg.UploadTimeout,
	}, tokens.Token, log)

	sessions := service.NewSessionService(client, tokens, log)
	summaries := service.NewSummaryService(client, log)
	refresher := async.NewRefresher(summaries, log)
	uploads := service.NewUploadService(client, refresher, log)
	queries := service.NewQueryService(client, cfg.PageSize, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	refresher.Start(ctx)

	sessions.Restore()

	a := &app{sessions: sessions, uploads: uploads, queries: queries, summaries: summaries}
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, domain.UserMessage(err))
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		a.sessions.Logout()
		fmt.Println("Logged out.")
		return nil
	case "upload":
		return a.upload(ctx, args)
	case "sample":
		return a.sample(ctx)
	case "summary":
		return a.summary(ctx)
	case "records":
		return a.records(ctx, args)
	case "search":
		return a.search(ctx, args)
	case "datasets":
		return a.datasets(ctx)
	case "delete":
		return a.delete(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	session, err := a.sessions.Login(ctx, ports.AuthInput{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", session.Email, session.Role)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (min 8 characters)")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	_ = fs.Parse(args)

	session, err := a.sessions.Register(ctx, ports.RegisterInput{
		Email:     *email,
		Password:  *password,
		FirstName: *first,
		LastName:  *last,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s\n", session.Email)
	return nil
}

func (a *app) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	path := fs.String("file", "", "path to a CSV or Excel dataset")
	_ = fs.Parse(args)

	f, err := os.Open(*path)
	if err != nil {
		return &domain.ClientError{Message: err.Error()}
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return &domain.ClientError{Message: err.Error()}
	}

	if err := a.uploads.SelectFile(domain.FileUpload{
		Name:        filepath.Base(*path),
		ContentType: contentTypeFor(*path),
		Size:        info.Size(),
		Content:     f,
	}); err != nil {
		return err
	}
	if err := a.uploads.Upload(ctx); err != nil {
		return err
	}

	message, _ := a.uploads.Message()
	fmt.Println(message)
	a.uploads.Acknowledge()
	return a.summary(ctx)
}

func (a *app) sample(ctx context.Context) error {
	if err := a.uploads.LoadSample(ctx); err != nil {
		return err
	}
	message, _ := a.uploads.Message()
	fmt.Println(message)
	a.uploads.Acknowledge()
	return a.summary(ctx)
}

func (a *app) summary(ctx context.Context) error {
	if err := a.summaries.Refresh(ctx); err != nil {
		return err
	}
	summary := a.summaries.Summary()
	fmt.Printf("Records: %d  Datasets: %d  Rated: %d\n",
		summary.TotalRecords, summary.DatasetCount, a.summaries.TotalRatingCount())
	for rating, count := range summary.RatingDistribution {
		fmt.Printf("  %-10s %d\n", rating, count)
	}
	recent, _ := a.summaries.RecentDatasets()
	for _, d := range recent {
		fmt.Printf("  dataset %d %-30s %s\n", d.ID, d.FileName, d.Status)
	}
	return nil
}

func (a *app) records(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("records", flag.ExitOnError)
	page := fs.Int("page", 0, "0-based page number")
	_ = fs.Parse(args)

	if err := a.queries.LoadPage(ctx, *page); err != nil {
		return err
	}
	return printRecords(a.queries.Snapshot())
}

func (a *app) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	keyword := fs.String("keyword", "", "issuer/industry/country keyword")
	_ = fs.Parse(args)

	if err := a.queries.Search(ctx, *keyword); err != nil {
		return err
	}
	return printRecords(a.queries.Snapshot())
}

func (a *app) datasets(ctx context.Context) error {
	if err := a.summaries.Refresh(ctx); err != nil {
		return err
	}
	recent, loaded := a.summaries.RecentDatasets()
	if !loaded || len(recent) == 0 {
		fmt.Println("No completed datasets.")
		return nil
	}
	for _, d := range recent {
		count := int64(0)
		if d.RecordCount != nil {
			count = *d.RecordCount
		}
		fmt.Printf("%d  %-30s %-10s %d records  uploaded %s\n",
			d.ID, d.FileName, d.Status, count, d.UploadedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "dataset id")
	_ = fs.Parse(args)

	if err := a.summaries.DeleteDataset(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Dataset %d deleted.\n", *id)
	return nil
}

func printRecords(state service.QueryState) error {
	fmt.Printf("Page %d (%d total records)\n", state.CurrentPage, state.TotalRecords)
	for _, r := range state.Records {
		fmt.Printf("%-30s %-20s %-15s %-10s %s\n",
			r.IssuerName, r.Industry, r.Country, r.Rating, domain.TierForRating(r.Rating))
	}
	return nil
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "text/csv"
	case ".xls":
		return "application/vnd.ms-excel"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: finratingctl <command> [flags]

commands:
  login     -email -password        authenticate and persist the session
  register  -email -password ...    create an account
  logout                            clear the session
  upload    -file <path>            upload a CSV/Excel dataset
  sample                            upload the bundled sample dataset
  summary                           show the dashboard summary
  records   -page <n>               list rated records
  search    -keyword <s>            filter records by keyword
  datasets                          list recent completed datasets
  delete    -id <n>                 delete a dataset`)
}
