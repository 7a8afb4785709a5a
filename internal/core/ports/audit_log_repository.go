package ports

import (
	"context"

	"standingorders/internal/core/domain/model/auditlog"
)

// AuditLogRepository appends lifecycle entries. Entries are never changed or
// removed.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *auditlog.Entry) error
}
