package app

import (
	"context"
	"errors"

	"college_assistant_bot/internal/app/menu"
	"college_assistant_bot/internal/app/session"
	"college_assistant_bot/internal/domain/messaging"
	"college_assistant_bot/internal/domain/student"
)

const (
	cmdStart  = "/start"
	cmdAdmin  = "/admin"
	cmdLogout = "/logout"
	cmdCancel = "/cancel"
	cmdHelp   = "/help"
)

// Every known command abandons the caller's pending step. The step is dropped
// as part of the command's own transition, so a failed store call leaves it in place.

func (r *Router) cmdStart(ctx context.Context, c *call) messaging.Outbound {
	if c.state.Admin {
		r.setState(c, c.state.Idle())
		return withMenu(msgWelcome, menu.RoleAdmin)
	}
	return r.beginRegistration(ctx, c)
}

// beginRegistration resumes registration from what the store knows about the caller.
func (r *Router) beginRegistration(ctx context.Context, c *call) messaging.Outbound {
	s := c.student
	if s == nil {
		var err error
		s, err = r.students.GetByTelegramID(ctx, c.in.CallerID)
		switch {
		case errors.Is(err, student.ErrNotFound):
			s = nil
		case err != nil:
			return r.fail(c, "find student", err)
		}
	}

	switch {
	case s == nil:
		next := c.state.Idle()
		next.Step = session.StepAwaitingName
		r.setState(c, next)
		return prompt(msgAskName)
	case !s.Registered():
		return r.promptGroup(ctx, c, s.FullName)
	default:
		r.setState(c, c.state.Idle())
		return withMenu(msgWelcome, menu.RoleRegistered)
	}
}

// promptGroup moves the caller to AWAITING_GROUP and lists the groups.
func (r *Router) promptGroup(ctx context.Context, c *call, fullName string) messaging.Outbound {
	names, err := r.groupNames(ctx)
	if err != nil {
		return r.fail(c, "list groups", err)
	}
	next := c.state.Idle()
	next.Step = session.StepAwaitingGroup
	next.Name = fullName
	r.setState(c, next)

	if len(names) == 0 {
		return prompt(msgNoGroups)
	}
	return messaging.Outbound{Text: msgChooseGroup, Options: menu.Groups(names)}
}

func (r *Router) groupNames(ctx context.Context) ([]string, error) {
	groups, err := r.groups.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names, nil
}

func (r *Router) cmdAdmin(_ context.Context, c *call) messaging.Outbound {
	if c.state.Admin {
		r.setState(c, c.state.Idle())
		return withMenu(msgAlreadyAdmin, menu.RoleAdmin)
	}
	next := c.state.Idle()
	next.Step = session.StepAwaitingAdminPassword
	r.setState(c, next)
	return prompt(msgAskPassword)
}

func (r *Router) cmdLogout(ctx context.Context, c *call) messaging.Outbound {
	if !c.state.Admin {
		r.setState(c, c.state.Idle())
		return text(msgAdminOnly)
	}
	r.setState(c, session.State{})
	r.audit(c.log, AuditEvent{Type: EventAdminLogout, CallerID: c.in.CallerID})

	if err := r.resolveRole(ctx, c); err != nil {
		// The logout itself has happened; only the keyboard is unknown.
		c.log.WithError(err).Warn("Could not resolve role after logout")
		return prompt(msgAdminLoggedOut)
	}
	return withMenu(msgAdminLoggedOut, c.role)
}

func (r *Router) cmdCancel(ctx context.Context, c *call) messaging.Outbound {
	if !c.state.Pending() {
		return text(msgNothingPending)
	}
	r.setState(c, c.state.Idle())
	if err := r.resolveRole(ctx, c); err != nil {
		c.log.WithError(err).Warn("Could not resolve role after cancel")
		return prompt(msgCancelled)
	}
	return withMenu(msgCancelled, c.role)
}

func (r *Router) cmdHelp(ctx context.Context, c *call) messaging.Outbound {
	if err := r.resolveRole(ctx, c); err != nil {
		return r.fail(c, "resolve role", err)
	}
	r.setState(c, c.state.Idle())
	switch c.role {
	case menu.RoleAdmin:
		return withMenu(helpAdmin, c.role)
	case menu.RoleRegistered:
		return withMenu(helpRegistered, c.role)
	default:
		return withMenu(helpAnonymous, c.role)
	}
}
