package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/legalwriter/internal/client/api"
	"github.com/dmitrijs2005/legalwriter/internal/client/auth"
	"github.com/dmitrijs2005/legalwriter/internal/client/client"
	"github.com/dmitrijs2005/legalwriter/internal/client/config"
	"github.com/dmitrijs2005/legalwriter/internal/client/metrics"
	"github.com/dmitrijs2005/legalwriter/internal/client/models"
	"github.com/dmitrijs2005/legalwriter/internal/client/services"
	"github.com/dmitrijs2005/legalwriter/internal/client/session"
	"github.com/dmitrijs2005/legalwriter/internal/client/sources"
	"github.com/dmitrijs2005/legalwriter/internal/logging"
	"golang.org/x/time/rate"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Facade is the part of the API catalog the commands use directly.
type Facade interface {
	GetProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id int64) (models.Project, error)
	CreateProject(ctx context.Context, in models.NewProject) (models.Project, error)
	GetDocuments(ctx context.Context, projectID int64) ([]models.Document, error)
	CreateDocument(ctx context.Context, in models.NewDocument) (models.Document, error)
	GetNotes(ctx context.Context, projectID int64) ([]models.Note, error)
	CreateNote(ctx context.Context, in models.NewNote) (models.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	GetResources(ctx context.Context, projectID int64) ([]models.Resource, error)
	ExtractResourceContent(ctx context.Context, id int64) (models.Resource, error)
	Chat(ctx context.Context, req models.ChatRequest) (models.ChatReply, error)
	GetAvailableContexts(ctx context.Context, projectID int64) ([]models.ChatContext, error)
}

type App struct {
	config          *config.Config
	api             Facade
	authService     services.AuthService
	researchService services.ResearchService
	metrics         *metrics.Metrics
	userName        string
	Mode            Mode
	reader          *bufio.Reader
	out             io.Writer
	history         map[int64][]models.ChatMessage
	closers         []func() error
}

// NewApp builds the client stack from c: session store, token inspector,
// dispatcher, facade and services. The persisted session, if any, is
// loaded so a previous login carries over.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	logger, err := logging.New(c.LogLevel, c.LogFormat, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, store, err := session.OpenStore(ctx, c.SessionDBPath)
	if err != nil {
		log.Printf("error opening session store: %s", err.Error())
		return nil, err
	}

	inspector := auth.NewInspector(c.ExpiryMargin)
	mgr := session.NewManager(store, inspector,
		session.WithRefreshTTL(c.RefreshTokenTTL),
		session.WithLogger(logger),
	)
	if err := mgr.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	var limiter *rate.Limiter
	if c.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.RateLimit), c.RateBurst)
	}

	m := metrics.New()
	apiClient, err := client.New(client.Config{
		BaseURL: c.BaseURL(),
		Timeout: c.RequestTimeout,
		Session: mgr,
		Checker: inspector,
		Logger:  logger,
		Metrics: m,
		Limiter: limiter,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	facade := api.New(apiClient, mgr)
	opener := sources.NewOpener(sources.S3Options{
		Region:    c.S3Region,
		Endpoint:  c.S3Endpoint,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	})

	app := &App{
		config:          c,
		api:             facade,
		authService:     services.NewAuthService(facade, store),
		researchService: services.NewResearchService(facade, opener),
		metrics:         m,
		reader:          bufio.NewReader(in),
		out:             out,
		history:         map[int64][]models.ChatMessage{},
		closers:         []func() error{db.Close},
	}
	mgr.OnClear(app.sessionCleared)

	if _, ok := mgr.RefreshToken(); ok {
		name, err := app.authService.CurrentUser(ctx)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.userName = name
	}

	return app, nil
}

func (app *App) setMode(mode Mode) {
	if app.Mode != mode {
		app.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

// Run starts the REPL and releases the session store when it returns.
func (app *App) Run(ctx context.Context) error {
	defer app.Close()
	app.Root(ctx)
	return nil
}

func (app *App) Close() error {
	var errs []error
	for _, fn := range app.closers {
		errs = append(errs, fn())
	}
	app.closers = nil
	return errors.Join(errs...)
}

func (app *App) isLoggedIn() bool {
	return app.userName != ""
}

// sessionCleared runs whenever the session is dropped, by logout or by a
// failed refresh.
func (app *App) sessionCleared() {
	if app.userName == "" {
		return
	}
	app.userName = ""
	app.history = map[int64][]models.ChatMessage{}
	fmt.Fprintln(app.out, "Session ended, use 'login' to sign in again")
}
