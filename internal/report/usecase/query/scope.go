package query

import (
	"time"

	"github.com/myduka/myduka-backend/internal/report/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// defaultRange is the report window when no dates are given
const defaultRange = 30 * 24 * time.Hour

// ReportParams are the caller-supplied report knobs shared by all reports
type ReportParams struct {
	Actor   userdomain.Actor
	StoreID *uint
	From    time.Time
	To      time.Time
}

// resolveFilter applies role scoping and date defaults. Merchants may query
// any store or all of them; admins are pinned to their own store; clerks get
// no reports at all.
func resolveFilter(p ReportParams) (domain.Filter, error) {
	filter := domain.Filter{StoreID: p.StoreID, From: p.From, To: p.To}

	switch p.Actor.Role {
	case userdomain.RoleMerchant:
		// Any store
	case userdomain.RoleAdmin:
		if p.Actor.StoreID == nil {
			return domain.Filter{}, userdomain.ErrForbidden
		}
		if p.StoreID != nil && *p.StoreID != *p.Actor.StoreID {
			return domain.Filter{}, userdomain.ErrForbidden
		}
		filter.StoreID = p.Actor.StoreID
	default:
		return domain.Filter{}, userdomain.ErrForbidden
	}

	if filter.To.IsZero() {
		filter.To = time.Now()
	}
	if filter.From.IsZero() {
		filter.From = filter.To.Add(-defaultRange)
	}
	return filter, nil
}
