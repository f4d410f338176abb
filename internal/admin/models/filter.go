package models

import "strings"

// FilterUsers keeps users whose display name or email contains term,
// ignoring case and surrounding spaces. An empty term keeps everything.
func FilterUsers(users []BackendUser, term string) []BackendUser {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return users
	}
	out := make([]BackendUser, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.DisplayName()), term) ||
			strings.Contains(strings.ToLower(u.Email), term) {
			out = append(out, u)
		}
	}
	return out
}

// FilterSubscriptions keeps plans whose name or description contains term.
func FilterSubscriptions(subs []Subscription, term string) []Subscription {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return subs
	}
	out := make([]Subscription, 0, len(subs))
	for _, s := range subs {
		desc := ""
		if s.Description != nil {
			desc = *s.Description
		}
		if strings.Contains(strings.ToLower(s.Name), term) ||
			strings.Contains(strings.ToLower(desc), term) {
			out = append(out, s)
		}
	}
	return out
}
