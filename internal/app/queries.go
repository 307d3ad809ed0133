package app

import (
	"context"
	"errors"
	"sort"

	"college_assistant_bot/internal/domain/group"
	"college_assistant_bot/internal/domain/messaging"
)

// studentGroup loads the group of a registered caller. A dangling group
// reference yields group.ErrNotFound.
func (r *Router) studentGroup(ctx context.Context, c *call) (*group.Group, error) {
	if !c.student.Registered() {
		return nil, group.ErrNotFound
	}
	return r.groups.GetByID(ctx, c.student.GroupID.Int64)
}

func (r *Router) showSchedule(ctx context.Context, c *call) messaging.Outbound {
	g, err := r.studentGroup(ctx, c)
	if errors.Is(err, group.ErrNotFound) {
		return withMenu(msgGroupMissing, c.role)
	}
	if err != nil {
		return r.fail(c, "find group", err)
	}

	entries, err := r.groups.ListSchedule(ctx, g.ID)
	if err != nil {
		return r.fail(c, "list schedule", err)
	}
	group.SortSchedule(entries)
	return withMenu(formatSchedule(g, entries), c.role)
}

func (r *Router) showTeachers(ctx context.Context, c *call) messaging.Outbound {
	teachers, err := r.teachers.ListActive(ctx)
	if err != nil {
		return r.fail(c, "list teachers", err)
	}
	sort.SliceStable(teachers, func(i, j int) bool {
		return teachers[i].FullName() < teachers[j].FullName()
	})
	return withMenu(formatTeachers(teachers), c.role)
}

func (r *Router) showPeers(ctx context.Context, c *call) messaging.Outbound {
	g, err := r.studentGroup(ctx, c)
	if errors.Is(err, group.ErrNotFound) {
		return withMenu(msgGroupMissing, c.role)
	}
	if err != nil {
		return r.fail(c, "find group", err)
	}

	peers, err := r.students.ListByGroup(ctx, g.ID)
	if err != nil {
		return r.fail(c, "list peer students", err)
	}
	sort.SliceStable(peers, func(i, j int) bool {
		return peers[i].FullName < peers[j].FullName
	})
	return withMenu(formatPeers(g, peers), c.role)
}

func (r *Router) showNews(ctx context.Context, c *call) messaging.Outbound {
	items, err := r.newsRepo.ListLatest(ctx, r.newsLimit)
	if err != nil {
		return r.fail(c, "list news", err)
	}
	// Newest first by creation order, whatever order the store returned.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ID > items[j].ID
	})
	if len(items) > r.newsLimit {
		items = items[:r.newsLimit]
	}
	c.log.WithField("news_count", len(items)).Debug("Listing news")
	return withMenu(formatNews(items), c.role)
}
