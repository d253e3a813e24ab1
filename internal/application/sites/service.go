package sites

import (
	"context"
	"errors"
	"strings"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/lease"
	"rentdesk-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
)

type Service struct {
	Store lease.Store
	// Now is the clock behind derived durations. Defaults to time.Now.
	Now func() time.Time
}

// UpdateResult names the fields written and the ones dropped by cleanup.
type UpdateResult struct {
	SiteCode string               `json:"site_id"`
	Updated  []string             `json:"updated_fields"`
	Dropped  []lease.DroppedField `json:"dropped_fields,omitempty"`
}

func (s *Service) today() time.Time {
	if s.Now != nil {
		return lease.Today(s.Now())
	}
	return lease.Today(time.Now())
}

// Get returns the full external record for one site.
func (s *Service) Get(ctx context.Context, siteCode string) (lease.ExternalRecord, error) {
	siteCode = strings.TrimSpace(siteCode)
	if siteCode == "" {
		return lease.ExternalRecord{}, domain.MissingField("site_id")
	}
	row, err := s.Store.FindRow(ctx, siteCode)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			log.Error().Err(err).Str("site", siteCode).Msg("find site failed")
		}
		return lease.ExternalRecord{}, err
	}
	return lease.Project(row, s.today()), nil
}

// List returns the summary projection of the first sites in entry order.
func (s *Service) List(ctx context.Context) ([]lease.SummaryRecord, error) {
	rows, err := s.Store.ListSummaryRows(ctx, lease.SummaryLimit)
	if err != nil {
		log.Error().Err(err).Msg("list sites failed")
		return nil, err
	}
	out := make([]lease.SummaryRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, lease.ProjectSummary(row))
	}
	return out, nil
}

// Update applies a partial update to one site. Fields that fail cleanup are
// dropped and reported; a site that matches no row is ErrRecordNotFound.
func (s *Service) Update(ctx context.Context, siteCode string, in lease.SiteInput) (UpdateResult, error) {
	siteCode = strings.TrimSpace(siteCode)
	if siteCode == "" {
		return UpdateResult{}, domain.MissingField("site_id")
	}
	set, err := lease.ReconcileUpdate(in)
	for _, d := range set.Dropped {
		log.Debug().Str("site", siteCode).Str("field", d.Field).Str("reason", d.Reason).Msg("update field dropped")
	}
	if err != nil {
		return UpdateResult{}, err
	}

	n, err := s.Store.Update(ctx, siteCode, set.Assignments)
	if err != nil {
		log.Error().Err(err).Str("site", siteCode).Msg("update site failed")
		return UpdateResult{}, err
	}
	if n == 0 {
		return UpdateResult{}, domain.ErrRecordNotFound
	}

	res := UpdateResult{SiteCode: siteCode, Dropped: set.Dropped}
	for _, col := range set.Columns() {
		res.Updated = append(res.Updated, lease.ToExternal(col))
	}
	return res, nil
}

// Create validates and inserts a new site. An existing site code is
// rejected before the insert is attempted.
func (s *Service) Create(ctx context.Context, in lease.SiteInput) (string, error) {
	set, err := lease.ReconcileInsert(in)
	if err != nil {
		return "", err
	}
	values := make(map[string]string, 3)
	for _, a := range set {
		switch a.Column.Name {
		case lease.ColSite, "PAN_NUMBER", "GST_NUMBER":
			values[a.Column.Name], _ = a.Value.(string)
		}
	}
	siteCode := values[lease.ColSite]
	if err := validation.CheckIdentifiers(siteCode, values["PAN_NUMBER"], values["GST_NUMBER"]); err != nil {
		return "", err
	}

	exists, err := s.Store.Exists(ctx, siteCode)
	if err != nil {
		log.Error().Err(err).Str("site", siteCode).Msg("site lookup failed")
		return "", err
	}
	if exists {
		return "", &domain.DuplicateSiteError{SiteCode: siteCode}
	}
	if err := s.Store.Insert(ctx, set); err != nil {
		if !errors.Is(err, domain.ErrDuplicateSiteCode) {
			log.Error().Err(err).Str("site", siteCode).Msg("insert site failed")
		}
		return "", err
	}
	log.Info().Str("site", siteCode).Msg("site created")
	return siteCode, nil
}
