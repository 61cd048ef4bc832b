package container

import (
	"context"
	"log/slog"
	"sync"

	"holoscope/config"
	app "holoscope/internal/application"
	"holoscope/internal/domain/port"
	"holoscope/internal/infrastructure/notify"
	"holoscope/internal/infrastructure/pdf"
	"holoscope/internal/infrastructure/storage"
	"holoscope/internal/infrastructure/vision"
)

type Container struct {
	Config        *config.Config
	Log           *slog.Logger
	UserService   *app.UserService
	OrgService    *app.OrgService
	ReportService *app.ReportService

	imagingOnce sync.Once
	imaging     *app.ImagingService
	colorizer   *vision.Colorizer
}

// New собирает сервисы. Модель раскрашивания загружается при первом обращении к Imaging.
func New(cfg *config.Config, logger *slog.Logger) *Container {
	userRepo := storage.NewFileUserRepository(cfg.Storage.Users)
	history := storage.NewFileLoginHistory(cfg.Storage.History)
	orgs := storage.NewFileOrgRepository(cfg.Storage.Orgs)

	renderer := pdf.NewRenderer(pdf.Config{
		LogoPath: cfg.Report.Logo,
		Footer:   cfg.Report.Footer,
		Creator:  "holoscope " + cfg.Report.SoftwareVersion,
		Compress: cfg.Report.CompressEnabled(),
	}, logger)

	var notifier port.ReportNotifier
	if cfg.Telegram.Enabled() {
		notifier = &lazyNotifier{cfg: notify.TelegramConfig{Token: cfg.Telegram.Token, ChatID: cfg.Telegram.ChatID}, log: logger}
	}

	admin := app.AdminCredentials{Username: cfg.Admin.Username, Password: cfg.Admin.Password}

	return &Container{
		Config:      cfg,
		Log:         logger,
		UserService: app.NewUserService(userRepo, history, admin, logger),
		OrgService:  app.NewOrgService(orgs),
		ReportService: app.NewReportService(renderer, notifier, app.ReportSettings{
			SoftwareVersion: cfg.Report.SoftwareVersion,
			OutputDir:       cfg.Storage.Workspace,
		}, logger),
	}
}

// Imaging возвращает сервис снимков. Ошибка загрузки модели не фатальна:
// раскрашивание просто остаётся недоступным до конца работы процесса.
func (c *Container) Imaging() *app.ImagingService {
	c.imagingOnce.Do(func() {
		var colorizer port.Colorizer
		m := c.Config.Model
		loaded, err := vision.NewColorizer(m.Prototxt, m.Weights, m.ColorBins)
		if err != nil {
			c.Log.Warn("Colorization disabled", "error", err)
		} else {
			c.colorizer = loaded
			colorizer = loaded
		}
		c.imaging = app.NewImagingService(c.Config.Storage.Workspace, colorizer, vision.NewCamera(), c.Log)
	})
	return c.imaging
}

// Close освобождает сеть раскрашивания, если она загружалась
func (c *Container) Close() error {
	if c.colorizer != nil {
		return c.colorizer.Close()
	}
	return nil
}

// lazyNotifier авторизует бота только при первой отправке
type lazyNotifier struct {
	cfg  notify.TelegramConfig
	log  *slog.Logger
	once sync.Once
	n    *notify.TelegramNotifier
	err  error
}

func (l *lazyNotifier) Deliver(ctx context.Context, path, caption string) error {
	l.once.Do(func() {
		l.n, l.err = notify.NewTelegramNotifier(l.cfg, l.log)
	})
	if l.err != nil {
		return l.err
	}
	return l.n.Deliver(ctx, path, caption)
}
