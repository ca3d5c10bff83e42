package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/observ"
)

// pageQuery describes one paginated read model. count returns the size of
// the scope; list returns one page of it and must end with
// "LIMIT $n OFFSET $n+1", where n = len(listArgs)+1.
type pageQuery struct {
	name      string
	count     string
	countArgs []any
	list      string
	listArgs  []any
}

// paginate runs the count, then the page. The page query is skipped when
// the requested offset is past the end, so out-of-range pages cost one
// round trip and still report the correct total.
func paginate[T any](ctx context.Context, db DBTX, q pageQuery, page models.PageRequest, scan func(pgx.Rows) (T, error)) ([]T, int64, error) {
	defer observ.ObserveQuery(q.name, time.Now())

	var total int64
	if err := db.QueryRow(ctx, q.count, q.countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", q.name, err)
	}

	items := make([]T, 0)
	if total == 0 || int64(page.Offset()) >= total {
		return items, total, nil
	}

	args := append(append([]any{}, q.listArgs...), page.Limit, page.Offset())
	rows, err := db.Query(ctx, q.list, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", q.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", q.name, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate %s: %w", q.name, err)
	}

	return items, total, nil
}

// ownerProfile turns a left-joined user into a profile, or nil when the
// join found nothing.
func ownerProfile(id pgtype.UUID, username, fullName, avatar pgtype.Text) *models.OwnerProfile {
	if !id.Valid {
		return nil
	}
	return &models.OwnerProfile{
		ID:        uuid.UUID(id.Bytes),
		Username:  username.String,
		FullName:  fullName.String,
		AvatarURL: avatar.String,
	}
}
