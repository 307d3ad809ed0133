package app

import (
	"context"
	"errors"
	"fmt"

	"college_assistant_bot/internal/app/menu"
	"college_assistant_bot/internal/app/session"
	"college_assistant_bot/internal/domain/group"
	"college_assistant_bot/internal/domain/messaging"
	"college_assistant_bot/internal/domain/news"
	"college_assistant_bot/internal/domain/student"
)

// stepName handles AWAITING_NAME. The student row is written before the
// session moves on, so retrying the same name after a failure is safe.
func (r *Router) stepName(ctx context.Context, c *call) messaging.Outbound {
	fullName, ok := parseFullName(c.text)
	if !ok {
		c.log.Debug("Rejected name input")
		return prompt(msgNameInvalid)
	}

	s, err := r.students.UpsertName(ctx, c.in.CallerID, fullName)
	if err != nil {
		return r.fail(c, "upsert student name", err)
	}
	r.audit(c.log, AuditEvent{
		Type:     EventStudentNameSaved,
		CallerID: c.in.CallerID,
		Details:  map[string]any{"student_id": s.ID, "full_name": s.FullName},
	})

	if s.Registered() {
		// Re-registration of a student who already has a group keeps the group.
		r.setState(c, c.state.Idle())
		return withMenu(fmt.Sprintf(msgNameUpdated, s.FullName), r.menuRole(c, menu.RoleRegistered))
	}
	return r.promptGroup(ctx, c, fullName)
}

// stepGroup handles AWAITING_GROUP. Only an exact group name is accepted.
func (r *Router) stepGroup(ctx context.Context, c *call) messaging.Outbound {
	g, err := r.groups.GetByName(ctx, c.text)
	if errors.Is(err, group.ErrNotFound) {
		c.log.WithField("input", c.text).Debug("Unknown group")
		return r.repromptGroup(ctx, c)
	}
	if err != nil {
		return r.fail(c, "find group", err)
	}

	err = r.students.SetGroup(ctx, c.in.CallerID, g.ID)
	if errors.Is(err, student.ErrNotFound) {
		// The row went missing between the two steps; recreate it from the session.
		if c.state.Name == "" {
			return r.resetSession(ctx, c, "awaiting group without a student row or a name")
		}
		c.log.Warn("Student row missing at group step, recreating")
		if _, err = r.students.UpsertName(ctx, c.in.CallerID, c.state.Name); err == nil {
			err = r.students.SetGroup(ctx, c.in.CallerID, g.ID)
		}
	}
	if errors.Is(err, group.ErrNotFound) {
		c.log.WithField("group_id", g.ID).Warn("Group removed before it could be assigned")
		return r.repromptGroup(ctx, c)
	}
	if err != nil {
		return r.fail(c, "set student group", err)
	}

	r.audit(c.log, AuditEvent{
		Type:     EventStudentGroupSet,
		CallerID: c.in.CallerID,
		Details:  map[string]any{"group_id": g.ID, "group": g.Name},
	})
	r.setState(c, c.state.Idle())
	return withMenu(fmt.Sprintf(msgRegistered, g.Name), r.menuRole(c, menu.RoleRegistered))
}

// repromptGroup keeps AWAITING_GROUP and offers the current groups again.
func (r *Router) repromptGroup(ctx context.Context, c *call) messaging.Outbound {
	names, err := r.groupNames(ctx)
	if err != nil {
		return r.fail(c, "list groups", err)
	}
	return messaging.Outbound{Text: msgUnknownGroup, Options: menu.Groups(names)}
}

// stepAdminPassword handles AWAITING_ADMIN_PASSWORD: one attempt per /admin.
func (r *Router) stepAdminPassword(ctx context.Context, c *call) messaging.Outbound {
	next := c.state.Idle()
	// The secret is compared as typed; surrounding spaces are part of it.
	if !r.admin.Authenticate(c.in.Input()) {
		r.setState(c, next)
		r.audit(c.log, AuditEvent{Type: EventAdminLoginFailed, CallerID: c.in.CallerID})
		return text(msgBadPassword)
	}

	next.Admin = true
	r.setState(c, next)
	r.audit(c.log, AuditEvent{Type: EventAdminLogin, CallerID: c.in.CallerID})
	return withMenu(msgAdminWelcome, menu.RoleAdmin)
}

// stepAdminActionInput handles AWAITING_ADMIN_ACTION_INPUT for the selected admin action.
func (r *Router) stepAdminActionInput(ctx context.Context, c *call) messaging.Outbound {
	if !c.state.Admin {
		return r.resetSession(ctx, c, "admin input step without admin flag")
	}

	switch c.state.Action {
	case session.AdminActionAddNews:
		return r.addNews(ctx, c)
	default:
		return r.resetSession(ctx, c, fmt.Sprintf("unknown admin action %d", c.state.Action))
	}
}

func (r *Router) addNews(ctx context.Context, c *call) messaging.Outbound {
	draft, err := news.ParseDraft(sanitizeText(c.text))
	if err != nil {
		c.log.WithError(err).Debug("Rejected news draft")
		return prompt(msgNewsBadFormat)
	}

	item, err := r.admin.PublishNews(ctx, draft)
	if err != nil {
		return r.fail(c, "insert news", err)
	}
	r.audit(c.log, AuditEvent{
		Type:     EventNewsCreated,
		CallerID: c.in.CallerID,
		Details:  map[string]any{"news_id": item.ID, "title": item.Title},
	})
	r.setState(c, c.state.Idle())
	return withMenu(msgNewsAdded, menu.RoleAdmin)
}

func (r *Router) beginAddNews(_ context.Context, c *call) messaging.Outbound {
	if !c.state.Admin {
		return text(msgAdminOnly)
	}
	next := c.state.Idle()
	next.Step = session.StepAwaitingAdminActionInput
	next.Action = session.AdminActionAddNews
	r.setState(c, next)
	return prompt(msgAskNews)
}

// menuRole picks the keyboard after a transition: admins keep the admin menu.
func (r *Router) menuRole(c *call, role menu.Role) menu.Role {
	if c.state.Admin {
		return menu.RoleAdmin
	}
	return role
}
