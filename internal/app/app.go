// Package app assembles the stores, integrations and services shared by the
// server and the cronjob runner.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	httpapi "builderclub-backend/internal/api/http"
	"builderclub-backend/internal/cache"
	"builderclub-backend/internal/config"
	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/integrations/anthropic"
	"builderclub-backend/internal/integrations/calendar"
	"builderclub-backend/internal/integrations/github"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/repository"
	fsrepo "builderclub-backend/internal/repository/firestore"
	"builderclub-backend/internal/repository/postgres"
	"builderclub-backend/internal/security"
	"builderclub-backend/internal/service"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Repositories is the storage backend selected by database.driver.
type Repositories struct {
	Members     repository.MemberRepository
	Events      repository.EventRepository
	RSVPs       repository.RSVPRepository
	Resources   repository.ResourceRepository
	CaseStudies repository.CaseStudyRepository
	Projects    repository.ProjectRepository
	// Accounts is only set for postgres.
	Accounts repository.AccountRepository

	ping  func(ctx context.Context) error
	close func() error
}

func (r *Repositories) Ping(ctx context.Context) error {
	return r.ping(ctx)
}

func (r *Repositories) Close() error {
	return r.close()
}

// App holds everything a process needs. Close releases it.
type App struct {
	Config   *config.Config
	Repos    *Repositories
	Identity security.IdentityProvider
	Services httpapi.Services

	stoppers []func()
}

// New wires the application from cfg. External integrations without
// credentials are left unset and their operations report ErrNotConfigured.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	var fb *firebase.App
	if cfg.Database.Driver == config.DriverFirestore || cfg.Auth.Mode == config.AuthModeFirebase {
		var err error
		fb, err = NewFirebaseApp(ctx, cfg.Firebase)
		if err != nil {
			return nil, err
		}
	}

	repos, err := OpenRepositories(ctx, cfg, fb)
	if err != nil {
		return nil, err
	}

	identity, local, err := NewIdentity(ctx, cfg, fb, repos)
	if err != nil {
		repos.Close()
		return nil, err
	}

	source, err := NewCalendarSource(ctx, cfg)
	if err != nil {
		repos.Close()
		return nil, err
	}

	gh, err := github.NewClient(cfg.GitHub.Token, cfg.GitHub.BaseURL, nil)
	if err != nil {
		repos.Close()
		return nil, err
	}

	var chat service.ChatStreamer
	if cfg.Chat.Enabled() {
		chat = anthropic.NewClient(cfg.Chat.APIKey)
	} else {
		logger.Warn("Anthropic API key not set, chat disabled")
	}

	var email service.EmailService
	if cfg.Email.SendGridAPIKey != "" {
		email = service.NewSendGridEmailService(cfg.Email.SendGridAPIKey, "", cfg.Email.FromAddress, cfg.Email.FromName)
	} else {
		logger.Warn("SendGrid API key not set, mail is logged instead of sent")
		email = service.NewConsoleEmailService()
	}

	upcoming := cache.NewMemo[[]domain.CalendarEvent]("calendar_upcoming", cfg.Calendar.CacheTTL)
	orgRepos := cache.NewMemo[[]github.OrgRepo]("github_repos", cfg.GitHub.RepoCacheTTL)
	upcoming.Start()
	orgRepos.Start()

	a := &App{
		Config:   cfg,
		Repos:    repos,
		Identity: identity,
		Services: httpapi.Services{
			Members:   service.NewMemberService(repos.Members, repos.Projects),
			Events:    service.NewEventService(repos.Events, repos.RSVPs, repos.Members, source, upcoming, cfg.Calendar, cfg.Club.FoundedAt),
			Content:   service.NewContentService(repos.Resources, repos.CaseStudies),
			Projects:  service.NewProjectService(repos.Projects, repos.Members, gh),
			Showcase:  service.NewRepoShowcaseService(gh, orgRepos, cfg.GitHub.Org, cfg.GitHub.ListLimit),
			Analytics: service.NewAnalyticsService(repos.Members, repos.Events, repos.RSVPs, repos.Resources, repos.CaseStudies, cfg.Club.Location()),
			Admin:     service.NewAdminService(repos.Members, repos.RSVPs, identity),
			Auth:      service.NewAuthService(identity, local, cfg.Club, cfg.IsBootstrapAdmin),
			Contact:   service.NewContactService(email, cfg.Email.ContactTo, cfg.Club.Name),
			Chat:      service.NewChatService(chat, cfg.Chat),
		},
		stoppers: []func(){upcoming.Stop, orgRepos.Stop},
	}
	return a, nil
}

// Close stops background caches and releases the store.
func (a *App) Close() error {
	for _, stop := range a.stoppers {
		stop()
	}
	return a.Repos.Close()
}

// NewFirebaseApp initializes the Admin SDK. Without a credentials file the
// SDK falls back to application default credentials.
func NewFirebaseApp(ctx context.Context, cfg config.FirebaseConfig) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	logger.ExternalServiceCall("Firebase", "NewApp", "project_id", cfg.ProjectID)
	fb, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}
	return fb, nil
}

// OpenRepositories connects to the configured store and checks it answers.
func OpenRepositories(ctx context.Context, cfg *config.Config, fb *firebase.App) (*Repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		store := postgres.NewStore(db)
		if err := pingWithTimeout(ctx, store.Ping); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		logger.Info("Database connection established")
		return &Repositories{
			Members:     store.MemberRepository,
			Events:      store.EventRepository,
			RSVPs:       store.RSVPRepository,
			Resources:   store.ResourceRepository,
			CaseStudies: store.CaseStudyRepository,
			Projects:    store.ProjectRepository,
			Accounts:    store.AccountRepository,
			ping:        store.Ping,
			close:       store.Close,
		}, nil

	case config.DriverFirestore:
		if fb == nil {
			return nil, errors.New("firestore driver requires a firebase app")
		}
		client, err := fb.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		store := fsrepo.NewStore(client)
		logger.Info("Firestore client ready", "project_id", cfg.Firebase.ProjectID)
		return &Repositories{
			Members:     store.MemberRepository,
			Events:      store.EventRepository,
			RSVPs:       store.RSVPRepository,
			Resources:   store.ResourceRepository,
			CaseStudies: store.CaseStudyRepository,
			Projects:    store.ProjectRepository,
			ping:        store.Ping,
			close:       store.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver: %q", cfg.Database.Driver)
}

// NewIdentity returns the identity provider for auth.mode. The password
// login is only available in local mode and is nil otherwise.
func NewIdentity(ctx context.Context, cfg *config.Config, fb *firebase.App, repos *Repositories) (security.IdentityProvider, service.PasswordLogin, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeFirebase:
		client, err := fb.Auth(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create firebase auth client: %w", err)
		}
		return security.NewFirebaseIdentity(client), nil, nil

	case config.AuthModeLocal:
		if repos.Accounts == nil {
			return nil, nil, errors.New("local auth requires an account store")
		}
		tokens := security.NewTokenManager(
			cfg.JWT.Secret,
			time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
			time.Duration(cfg.JWT.ExchangeExpiry)*time.Minute,
		)
		local := security.NewLocalIdentity(repos.Accounts, tokens)
		return local, local, nil
	}
	return nil, nil, fmt.Errorf("unknown auth mode: %q", cfg.Auth.Mode)
}

// NewCalendarSource returns nil when no calendar is configured.
func NewCalendarSource(ctx context.Context, cfg *config.Config) (service.CalendarSource, error) {
	if !cfg.Calendar.Enabled() {
		logger.Warn("Google Calendar not configured, event proxy and sync disabled")
		return nil, nil
	}
	client, err := calendar.NewClient(ctx, cfg.Calendar.CalendarID, cfg.Club.Location(), option.WithAPIKey(cfg.Calendar.APIKey))
	if err != nil {
		return nil, err
	}
	return client, nil
}

func pingWithTimeout(ctx context.Context, ping func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return ping(ctx)
}
