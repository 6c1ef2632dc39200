package api

import (
	"acadport/clients/identity"
	"acadport/clients/storage"
	"acadport/services/notify"
	"acadport/services/projection"
	"acadport/services/record"
	"acadport/services/session"
	"acadport/services/stats"
	"acadport/utils"
)

func TransformRecord(r record.Record) Record {
	return Record{
		Id:          r.ID,
		Type:        string(r.Type),
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Grade:       r.Grade,
		Institution: r.Institution,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ToFields maps a form payload onto the editable fields. Missing optional
// fields become empty strings.
func (in RecordInput) ToFields() record.Fields {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return record.Fields{
		Type:        record.Type(in.Type),
		Title:       in.Title,
		Description: deref(in.Description),
		Date:        deref(in.Date),
		Grade:       deref(in.Grade),
		Institution: deref(in.Institution),
		Category:    deref(in.Category),
	}
}

func TransformCounts(c stats.Counts) Counts {
	return Counts{
		Total:       c.Total,
		Achievement: c.Achievements,
		Result:      c.Results,
		Record:      c.Records,
	}
}

func transformBuckets(buckets []stats.Bucket) []Bucket {
	out := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, Bucket{Label: b.Label, Count: b.Count})
	}
	return out
}

func TransformStats(s session.Stats) Stats {
	return Stats{
		Counts:       TransformCounts(s.Counts),
		Categories:   transformBuckets(s.Categories),
		Institutions: transformBuckets(s.Institutions),
	}
}

func TransformDashboard(st session.State) Dashboard {
	records := make([]Record, 0, len(st.View.Records))
	for _, r := range st.View.Records {
		records = append(records, TransformRecord(r))
	}
	result := Dashboard{
		Criteria: Criteria{
			Filter: Filter(st.Criteria.Filter),
			Sort:   Sort(st.Criteria.Sort),
			Search: st.Criteria.Search,
		},
		Layout:  Layout(st.Layout),
		Counts:  TransformCounts(st.Counts),
		Records: records,
		Empty:   st.View.Empty,
		Loaded:  st.Loaded,
	}
	if st.View.Message != "" {
		result.Message = utils.ToPointer(st.View.Message)
	}
	if st.PendingDelete != "" {
		result.PendingDelete = utils.ToPointer(st.PendingDelete)
	}
	return result
}

// MergeCriteria applies the query parameters that were set on top of current.
func (p GetRecordsParams) MergeCriteria(current projection.Criteria) (projection.Criteria, bool) {
	changed := false
	if p.Filter != nil {
		current.Filter = projection.Filter(*p.Filter)
		changed = true
	}
	if p.Sort != nil {
		current.Sort = projection.Sort(*p.Sort)
		changed = true
	}
	if p.Search != nil {
		current.Search = *p.Search
		changed = true
	}
	return current, changed
}

func TransformNotification(n notify.Notification) Notification {
	return Notification{
		Id:        n.ID,
		Level:     string(n.Level),
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
		ExpiresAt: n.ExpiresAt,
	}
}

func TransformNotifications(ns []notify.Notification) []Notification {
	out := make([]Notification, 0, len(ns))
	for _, n := range ns {
		out = append(out, TransformNotification(n))
	}
	return out
}

func TransformAccount(a *identity.Account, message string) AuthResponse {
	return AuthResponse{
		Uid:          a.UID,
		Email:        a.Email,
		DisplayName:  a.DisplayName,
		IdToken:      a.IDToken,
		RefreshToken: a.RefreshToken,
		ExpiresIn:    int(a.ExpiresIn.Seconds()),
		Message:      message,
	}
}

func TransformArchived(o storage.Object) ArchivedBackup {
	return ArchivedBackup{
		Name:      o.Name,
		Size:      o.Size,
		CreatedAt: o.CreatedAt,
	}
}
