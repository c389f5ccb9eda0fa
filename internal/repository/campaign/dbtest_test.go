package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aniladanir/campaign-manager/internal/domain"
	"github.com/aniladanir/campaign-manager/internal/persistant"
	"gorm.io/gorm"
)

// openTestDB opens a private in-memory sqlite database. The sqlite driver
// needs cgo; tests are skipped when it is unavailable.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := persistant.Open(context.Background(), persistant.DriverSqlite, dsn, []any{&domain.Template{}, &domain.Contact{}, &domain.Campaign{}})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = persistant.Close(db) })
	return db
}
