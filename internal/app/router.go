package app

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"college_assistant_bot/internal/app/menu"
	"college_assistant_bot/internal/app/session"
	"college_assistant_bot/internal/domain/group"
	"college_assistant_bot/internal/domain/messaging"
	"college_assistant_bot/internal/domain/news"
	"college_assistant_bot/internal/domain/student"
	"college_assistant_bot/internal/domain/teacher"

	"github.com/sirupsen/logrus"
)

const (
	DefaultStoreTimeout = 5 * time.Second
	DefaultNewsLimit    = 5
)

// RouterDeps wires the router to its collaborators.
type RouterDeps struct {
	Students student.Repository
	Groups   group.Repository
	Teachers teacher.Repository
	News     news.Repository
	Admin    *AdminService
	Sessions *session.Cache
	Journal  AuditJournal // optional
	Logger   *logrus.Entry

	// AuditTimeout bounds one journal publish; it is independent of StoreTimeout.
	AuditTimeout time.Duration

	// StoreTimeout bounds the store calls made while handling one message.
	StoreTimeout time.Duration
	NewsLimit    int
}

// Router is the dialogue engine: it turns one inbound message into exactly one reply.
//
// Each message is classified, in order, as a command, an answer to the
// caller's pending step, a press of a button from the caller's role menu,
// or unmatched input.
type Router struct {
	students student.Repository
	groups   group.Repository
	teachers teacher.Repository
	newsRepo news.Repository
	admin    *AdminService
	sessions *session.Cache
	logger   *logrus.Entry

	publisher *auditPublisher // nil without a journal

	storeTimeout time.Duration
	newsLimit    int
	now          func() time.Time

	commands map[string]handlerFunc
	steps    map[session.Step]handlerFunc
	actions  map[menu.Action]handlerFunc
}

type handlerFunc func(ctx context.Context, c *call) messaging.Outbound

// call carries what the handlers of one message need.
type call struct {
	in    messaging.Inbound
	text  string
	state session.State
	log   *logrus.Entry

	// Filled in before menu dispatch.
	role    menu.Role
	student *student.Student
}

func NewRouter(deps RouterDeps) (*Router, error) {
	if deps.Students == nil || deps.Groups == nil || deps.Teachers == nil || deps.News == nil {
		return nil, errors.New("router: all repositories are required")
	}
	if deps.Admin == nil || deps.Sessions == nil {
		return nil, errors.New("router: admin service and session cache are required")
	}
	if deps.Logger == nil {
		deps.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if deps.StoreTimeout <= 0 {
		deps.StoreTimeout = DefaultStoreTimeout
	}
	if deps.NewsLimit <= 0 {
		deps.NewsLimit = DefaultNewsLimit
	}
	if deps.AuditTimeout <= 0 {
		deps.AuditTimeout = DefaultAuditTimeout
	}

	r := &Router{
		students:     deps.Students,
		groups:       deps.Groups,
		teachers:     deps.Teachers,
		newsRepo:     deps.News,
		admin:        deps.Admin,
		sessions:     deps.Sessions,
		logger:       deps.Logger,
		storeTimeout: deps.StoreTimeout,
		newsLimit:    deps.NewsLimit,
		now:          time.Now,
	}

	if deps.Journal != nil {
		r.publisher = newAuditPublisher(deps.Journal, deps.AuditTimeout)
	}

	r.commands = map[string]handlerFunc{
		cmdStart:  r.cmdStart,
		cmdAdmin:  r.cmdAdmin,
		cmdLogout: r.cmdLogout,
		cmdCancel: r.cmdCancel,
		cmdHelp:   r.cmdHelp,
	}
	r.steps = map[session.Step]handlerFunc{
		session.StepAwaitingName:             r.stepName,
		session.StepAwaitingGroup:            r.stepGroup,
		session.StepAwaitingAdminPassword:    r.stepAdminPassword,
		session.StepAwaitingAdminActionInput: r.stepAdminActionInput,
	}
	r.actions = map[menu.Action]handlerFunc{
		menu.ActionRegister:    r.beginRegistration,
		menu.ActionSchedule:    r.showSchedule,
		menu.ActionTeachers:    r.showTeachers,
		menu.ActionPeers:       r.showPeers,
		menu.ActionNews:        r.showNews,
		menu.ActionAddNews:     r.beginAddNews,
		menu.ActionAdminLogout: r.cmdLogout,
	}
	return r, nil
}

// Close flushes queued audit events. The router must not handle messages afterwards.
func (r *Router) Close() {
	if r.publisher != nil {
		r.publisher.close()
	}
}

// Commands returns the supported commands, for registering them with the channel.
func (r *Router) Commands() []string {
	return []string{cmdStart, cmdAdmin, cmdLogout, cmdCancel, cmdHelp}
}

// Handle processes one inbound message. Messages of the same caller are
// handled one at a time, in arrival order of their Handle calls.
func (r *Router) Handle(ctx context.Context, in messaging.Inbound) (out messaging.Outbound) {
	log := r.logger.WithFields(logrus.Fields{
		"caller_id":  in.CallerID,
		"request_id": in.RequestID,
	})

	unlock := r.sessions.Lock(in.CallerID)
	defer unlock()

	defer func() {
		if rec := recover(); rec != nil {
			log.WithFields(logrus.Fields{
				"panic": rec,
				"stack": string(debug.Stack()),
			}).Error("Handler panicked, resetting caller session")
			r.sessions.Clear(in.CallerID)
			out = messaging.Outbound{CallerID: in.CallerID, Text: msgSessionReset, RemoveKeyboard: true}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()

	st, _ := r.sessions.Get(in.CallerID)
	c := &call{
		in:    in,
		text:  strings.TrimSpace(in.Input()),
		state: st,
		log:   log.WithField("step", st.Step.String()),
	}

	out = r.dispatch(ctx, c)
	out.CallerID = in.CallerID
	return out
}

func (r *Router) dispatch(ctx context.Context, c *call) messaging.Outbound {
	if name, ok := parseCommand(c.text); ok {
		h, known := r.commands[name]
		if !known {
			c.log.WithField("command", name).Info("Unknown command")
			return text(msgUnknownCommand)
		}
		c.log.WithField("command", name).Info("Processing command")
		return h(ctx, c)
	}

	if c.state.Pending() {
		h, ok := r.steps[c.state.Step]
		if !ok {
			return r.resetSession(ctx, c, fmt.Sprintf("no handler for step %d", c.state.Step))
		}
		return h(ctx, c)
	}

	if err := r.resolveRole(ctx, c); err != nil {
		return r.fail(c, "resolve role", err)
	}
	if action, ok := menu.Resolve(c.role, c.text); ok {
		c.log.WithFields(logrus.Fields{"role": c.role.String(), "button": c.text}).Info("Menu button pressed")
		return r.actions[action](ctx, c)
	}

	c.log.WithField("role", c.role.String()).Debug("Unmatched input")
	return withMenu(msgUnknownInput, c.role)
}

// resolveRole derives the caller's role: admin flag first, then a student row
// with a group, otherwise anonymous.
func (r *Router) resolveRole(ctx context.Context, c *call) error {
	if c.state.Admin {
		c.role = menu.RoleAdmin
		return nil
	}
	s, err := r.students.GetByTelegramID(ctx, c.in.CallerID)
	switch {
	case errors.Is(err, student.ErrNotFound):
		c.role = menu.RoleAnonymous
		return nil
	case err != nil:
		return err
	}
	c.student = s
	if s.Registered() {
		c.role = menu.RoleRegistered
	} else {
		c.role = menu.RoleAnonymous
	}
	return nil
}

// setState stores the caller's next state. Handlers call it only after every
// store call of the transition has succeeded.
func (r *Router) setState(c *call, st session.State) {
	r.sessions.Set(c.in.CallerID, st)
	c.state = st
}

// fail logs a store failure and returns the generic reply. Session state is untouched.
func (r *Router) fail(c *call, op string, err error) messaging.Outbound {
	entry := c.log.WithError(err).WithField("op", op)
	if errors.Is(err, context.DeadlineExceeded) {
		entry.Error("Store call timed out")
	} else {
		entry.Error("Store call failed")
	}
	return text(msgFailure)
}

// resetSession handles an impossible session state: only this caller's session is dropped.
func (r *Router) resetSession(ctx context.Context, c *call, reason string) messaging.Outbound {
	c.log.WithField("reason", reason).Error("Inconsistent session state, resetting")
	r.sessions.Clear(c.in.CallerID)
	r.audit(c.log, AuditEvent{
		Type:     EventSessionReset,
		CallerID: c.in.CallerID,
		Details:  map[string]any{"reason": reason},
	})
	return messaging.Outbound{Text: msgSessionReset, RemoveKeyboard: true}
}

func text(msg string) messaging.Outbound {
	return messaging.Outbound{Text: msg}
}

func withMenu(msg string, role menu.Role) messaging.Outbound {
	return messaging.Outbound{Text: msg, Options: menu.For(role)}
}

func prompt(msg string) messaging.Outbound {
	return messaging.Outbound{Text: msg, RemoveKeyboard: true}
}
