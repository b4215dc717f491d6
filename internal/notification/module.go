// Package notification reacts to job and affidavit events: it emails servers
// about new assignments, records in-app notifications, pushes live updates
// over SSE and, when a company opted in, delivers affidavits automatically.
package notification

import (
	"context"
	"fmt"
	"strings"

	companyrepo "serveportal_backend/internal/company/repository"
	"serveportal_backend/internal/email"
	"serveportal_backend/internal/events"
	apphttp "serveportal_backend/internal/http"
	jobdomain "serveportal_backend/internal/jobs/domain"
	notifhandler "serveportal_backend/internal/notification/handler"
	"serveportal_backend/internal/notification/inapp"
	"serveportal_backend/internal/notification/settings"
	"serveportal_backend/internal/notification/sse"
	"serveportal_backend/platform/config"
	"serveportal_backend/platform/httpkit"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const resourceTypeAffidavit = "affidavit"

// JobReader loads a job for notification content.
type JobReader interface {
	Load(ctx context.Context, tenantID, id uuid.UUID) (jobdomain.Job, []jobdomain.Attempt, error)
}

// ServerDirectory resolves the email of an assigned server.
type ServerDirectory interface {
	Contact(ctx context.Context, tenantID, id uuid.UUID) (email, name string, err error)
}

// CompanyReader provides the sending company's name.
type CompanyReader interface {
	Profile(ctx context.Context, tenantID uuid.UUID) (companyrepo.Profile, error)
}

// AffidavitSender delivers a generated affidavit to the job's client.
type AffidavitSender interface {
	AutoSend(ctx context.Context, tenantID, affidavitID uuid.UUID) error
}

// Subscriber is the part of the event bus the module needs.
type Subscriber interface {
	Subscribe(eventName string, handler events.Handler)
}

// Module handles all notification-related event subscriptions.
type Module struct {
	sender     email.Sender
	cfg        config.NotificationConfig
	log        *logger.Logger
	settings   notifhandler.SettingsStore
	inApp      *inapp.Service
	sse        *sse.Service
	handler    *notifhandler.HTTPHandler
	jobs       JobReader
	servers    ServerDirectory
	company    CompanyReader
	affidavits AffidavitSender
}

// New creates a new notification module.
func New(pool *pgxpool.Pool, sender email.Sender, cfg config.NotificationConfig, val *validator.Validator, log *logger.Logger) *Module {
	return newModule(inapp.NewRepository(pool), settings.NewRepository(pool), sender, cfg, val, log)
}

func newModule(store inapp.Store, settingsStore notifhandler.SettingsStore, sender email.Sender, cfg config.NotificationConfig, val *validator.Validator, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	stream := sse.New(log)
	inAppSvc := inapp.NewService(store, stream, log)

	return &Module{
		sender:   sender,
		cfg:      cfg,
		log:      log,
		settings: settingsStore,
		inApp:    inAppSvc,
		sse:      stream,
		handler:  notifhandler.NewHTTPHandler(inAppSvc, settingsStore, val),
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string { return "notification" }

// RegisterRoutes mounts the in-app notification, settings and live stream
// routes. The stream carries company-wide job events, so it is staff only.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Staff.GET("/notifications/stream", m.sse.Handler(streamUserID, streamTenantID))
	m.handler.RegisterRoutes(ctx.Protected.Group("/notifications"))

	m.handler.RegisterSettingsRoutes(ctx.Staff.Group("/notification-settings"))
}

func streamUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(httpkit.ContextUserIDKey)
	if !ok {
		return uuid.UUID{}, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func streamTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(httpkit.ContextTenantIDKey)
	if !ok {
		return uuid.UUID{}, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// SetJobReader enables job details in assignment emails.
func (m *Module) SetJobReader(jobs JobReader) { m.jobs = jobs }

// SetServerDirectory enables assignment emails.
func (m *Module) SetServerDirectory(servers ServerDirectory) { m.servers = servers }

// SetCompanyReader enables the company name in emails.
func (m *Module) SetCompanyReader(company CompanyReader) { m.company = company }

// SetAffidavitSender enables automatic affidavit delivery.
func (m *Module) SetAffidavitSender(sender AffidavitSender) { m.affidavits = sender }

// InAppService exposes the in-app notification service.
func (m *Module) InAppService() *inapp.Service { return m.inApp }

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus Subscriber) {
	bus.Subscribe(events.JobAssigned{}.EventName(), m)
	bus.Subscribe(events.JobStatusReconciled{}.EventName(), m)
	bus.Subscribe(events.AffidavitGenerated{}.EventName(), m)
	bus.Subscribe(events.AffidavitSent{}.EventName(), m)
}

// Handle implements events.Handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.JobAssigned:
		return m.handleJobAssigned(ctx, e)
	case events.JobStatusReconciled:
		return m.handleJobStatusReconciled(ctx, e)
	case events.AffidavitGenerated:
		return m.handleAffidavitGenerated(ctx, e)
	case events.AffidavitSent:
		return m.handleAffidavitSent(ctx, e)
	default:
		m.log.Warn("unhandled event type in notification module", "event", event.EventName())
		return nil
	}
}

func (m *Module) settingsFor(ctx context.Context, tenantID uuid.UUID) settings.Settings {
	if m.settings == nil {
		return settings.Defaults()
	}
	s, err := m.settings.Get(ctx, tenantID)
	if err != nil {
		m.log.CollaboratorDegraded("notification_settings", tenantID.String(), err)
		return settings.Defaults()
	}
	return s
}

func (m *Module) companyName(ctx context.Context, tenantID uuid.UUID) string {
	if m.company == nil {
		return ""
	}
	profile, err := m.company.Profile(ctx, tenantID)
	if err != nil {
		m.log.CollaboratorDegraded("company_profile", tenantID.String(), err)
		return ""
	}
	return strings.TrimSpace(profile.Name)
}

func (m *Module) buildURL(path string) string {
	base := ""
	if m.cfg != nil {
		base = strings.TrimRight(m.cfg.GetAppBaseURL(), "/")
	}
	return base + path
}

func (m *Module) handleJobAssigned(ctx context.Context, e events.JobAssigned) error {
	if e.ServerID == nil {
		return nil
	}

	m.sse.PublishToTenant(e.TenantID, sse.Event{Type: sse.EventJobAssigned, JobID: e.JobID, Data: map[string]any{"serverId": e.ServerID}})

	if !m.settingsFor(ctx, e.TenantID).EmailOnAssignment || m.servers == nil {
		return nil
	}

	toEmail, serverName, err := m.servers.Contact(ctx, e.TenantID, *e.ServerID)
	if err != nil {
		return fmt.Errorf("resolve server contact: %w", err)
	}
	if strings.TrimSpace(toEmail) == "" {
		m.log.Info("assigned server has no email; skipping notice", "jobId", e.JobID, "serverId", e.ServerID)
		return nil
	}

	data := email.JobAssignedEmail{
		ServerName:  serverName,
		CompanyName: m.companyName(ctx, e.TenantID),
		JobURL:      m.buildURL("/jobs/" + e.JobID.String()),
	}
	if m.jobs != nil {
		job, _, err := m.jobs.Load(ctx, e.TenantID, e.JobID)
		if err != nil {
			m.log.CollaboratorDegraded("jobs", e.JobID.String(), err)
		} else {
			data.JobNumber = job.JobNumber
			data.RecipientName = job.Recipient.Name
			if addr, ok := job.PrimaryAddress(); ok {
				data.ServiceAddress = addr.OneLine()
			}
			if job.DueDate != nil {
				data.DueDate = job.DueDate.Format("January 2, 2006")
			}
		}
	}

	if err := m.sender.SendJobAssignedEmail(ctx, toEmail, data); err != nil {
		m.log.Error("failed to send job assignment email", "error", err, "jobId", e.JobID)
		return err
	}
	m.log.Info("job assignment email sent", "jobId", e.JobID, "serverId", e.ServerID)
	return nil
}

func (m *Module) handleJobStatusReconciled(_ context.Context, e events.JobStatusReconciled) error {
	m.log.Info("job status reconciled", "jobId", e.JobID, "from", e.FromStatus, "to", e.ToStatus)
	m.sse.PublishToTenant(e.TenantID, sse.Event{
		Type:  sse.EventJobReconciled,
		JobID: e.JobID,
		Data:  map[string]string{"fromStatus": e.FromStatus, "toStatus": e.ToStatus},
	})
	return nil
}

func (m *Module) handleAffidavitGenerated(ctx context.Context, e events.AffidavitGenerated) error {
	m.log.Info("affidavit ready", "jobId", e.JobID, "affidavitId", e.AffidavitID, "served", e.Served)
	m.sse.PublishToTenant(e.TenantID, sse.Event{
		Type:  sse.EventAffidavitGenerated,
		JobID: e.JobID,
		Data:  map[string]any{"affidavitId": e.AffidavitID, "served": e.Served},
	})

	affidavitID := e.AffidavitID
	m.notifyRequester(ctx, e, inapp.SendParams{
		Title:      "Affidavit ready",
		Content:    "The affidavit is ready to download.",
		ResourceID: &affidavitID,
		Category:   inapp.CategorySuccess,
	})

	if m.affidavits == nil || !m.settingsFor(ctx, e.TenantID).AutoSendAffidavits {
		return nil
	}
	if err := m.affidavits.AutoSend(ctx, e.TenantID, e.AffidavitID); err != nil {
		m.log.Warn("automatic affidavit delivery failed", "affidavitId", e.AffidavitID, "error", err)
		m.notifyRequester(ctx, e, inapp.SendParams{
			Title:      "Affidavit not sent",
			Content:    "Automatic delivery to the client failed. Send it manually from the job.",
			ResourceID: &affidavitID,
			Category:   inapp.CategoryWarning,
		})
	}
	return nil
}

func (m *Module) notifyRequester(ctx context.Context, e events.AffidavitGenerated, p inapp.SendParams) {
	if e.RequestedBy == uuid.Nil {
		return
	}
	p.Recipient = inapp.Recipient{TenantID: e.TenantID, UserID: e.RequestedBy}
	p.ResourceType = resourceTypeAffidavit
	if err := m.inApp.Send(ctx, p); err != nil {
		m.log.CollaboratorDegraded("in_app_notifications", e.AffidavitID.String(), err)
	}
}

func (m *Module) handleAffidavitSent(_ context.Context, e events.AffidavitSent) error {
	m.sse.PublishToTenant(e.TenantID, sse.Event{
		Type: sse.EventAffidavitSent,
		Data: map[string]any{"affidavitId": e.AffidavitID, "recipient": e.Recipient, "sentAt": e.SentAt},
	})
	return nil
}

var _ apphttp.Module = (*Module)(nil)
