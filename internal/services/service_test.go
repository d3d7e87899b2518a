package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/gpaccess/backend/internal/data/repos"
	"github.com/gpaccess/backend/internal/data/repos/testutil"
	"github.com/gpaccess/backend/internal/domain"
)

// testEnv wires the full service stack against the integration database.
// Services own their transactions, so tests commit real rows and must
// clean up after themselves with the helpers below.
type testEnv struct {
	db        *gorm.DB
	practices PracticeService
	addresses AddressService
	employees EmployeeService
	systems   AccessSystemService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.DB(t)
	log := testutil.Logger(t)

	practiceRepo := repos.NewPracticeRepo(db, log)
	addressRepo := repos.NewAddressRepo(db, log)
	employeeRepo := repos.NewEmployeeRepo(db, log)
	jobTitleRepo := repos.NewJobTitleRepo(db, log)
	systemRepo := repos.NewAccessSystemRepo(db, log)
	ipRangeRepo := repos.NewIPRangeRepo(db, log)
	assocRepo := repos.NewAssociationRepo(db, log)

	return &testEnv{
		db:        db,
		practices: NewPracticeService(db, log, practiceRepo, employeeRepo, systemRepo, addressRepo, assocRepo),
		addresses: NewAddressService(db, log, addressRepo, practiceRepo),
		employees: NewEmployeeService(db, log, employeeRepo, practiceRepo, jobTitleRepo, assocRepo),
		systems:   NewAccessSystemService(db, log, systemRepo, ipRangeRepo),
	}
}

// cleanupPractice removes the named practice after the test. Join rows and
// the address go with it via the cascading foreign keys.
func (e *testEnv) cleanupPractice(t *testing.T, name string) {
	t.Helper()
	t.Cleanup(func() {
		e.db.Where("name = ?", name).Delete(&domain.Practice{})
	})
}

func (e *testEnv) cleanupEmployee(t *testing.T, email string) {
	t.Helper()
	t.Cleanup(func() {
		e.db.Where("email = ?", email).Delete(&domain.Employee{})
	})
}

func (e *testEnv) cleanupJobTitle(t *testing.T, title string) {
	t.Helper()
	t.Cleanup(func() {
		e.db.Where("title = ?", title).Delete(&domain.JobTitle{})
	})
}

func (e *testEnv) cleanupAccessSystem(t *testing.T, name string) {
	t.Helper()
	t.Cleanup(func() {
		e.db.Where("name = ?", name).Delete(&domain.AccessSystem{})
	})
}
