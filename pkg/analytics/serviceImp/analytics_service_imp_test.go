package serviceImp

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"greenlands/entities"
	"greenlands/pkg/analytics/service"
	"greenlands/pkg/policy"
)

func newTestSvc(t *testing.T) (service.AnalyticsService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Land{}))
	return New(db), db
}

func seedFarmer(t *testing.T, db *gorm.DB, name, location string, landArea float64, experience int, crops ...string) *entities.User {
	t.Helper()
	u := &entities.User{Name: name, Email: name + "@example.com", Password: "x",
		Role: policy.RoleFarmer, IsActive: true, Location: location, LastLogin: time.Now()}
	u.FarmDetails.TotalLandArea = landArea
	u.FarmDetails.Experience = experience
	u.FarmDetails.Crops = crops
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedLand(t *testing.T, db *gorm.DB, farmerID uint, crop string, area float64, yield *float64) {
	t.Helper()
	l := &entities.Land{Name: crop + " plot", Area: area, Crop: crop, SoilType: "Loamy",
		Status: "Active", Coordinates: []float64{1, 2}, FarmerID: farmerID,
		ActualYield: yield, LastUpdated: time.Now()}
	require.NoError(t, db.Create(l).Error)
}

func f64(v float64) *float64 { return &v }

func TestOverviewEmptyDatabase(t *testing.T) {
	svc, _ := newTestSvc(t)

	out, err := svc.Overview()
	require.NoError(t, err)

	assert.Zero(t, out.TotalLand)
	assert.Zero(t, out.ActiveFarmers)
	assert.Zero(t, out.GovernmentPartners)
	assert.Zero(t, out.AverageYield)
	assert.NotNil(t, out.CropDistribution)
	assert.Empty(t, out.CropDistribution)
	assert.NotNil(t, out.RegionalData)
	assert.Empty(t, out.RegionalData)
	assert.Equal(t, float64(92), out.SustainabilityScore)
	assert.Equal(t, 12.5, out.MonthlyGrowth)
}

func TestOverviewAggregates(t *testing.T) {
	svc, db := newTestSvc(t)

	alice := seedFarmer(t, db, "alice", "North", 30, 3)
	bob := seedFarmer(t, db, "bob", "North", 20, 8)
	seedFarmer(t, db, "carol", "South", 50, 20)
	inactive := seedFarmer(t, db, "dave", "South", 99, 1)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)
	require.NoError(t, db.Create(&entities.User{Name: "gov", Email: "gov@example.com",
		Password: "x", Role: policy.RoleGovernment, IsActive: true}).Error)

	seedLand(t, db, alice.ID, "Wheat", 10, f64(4))
	seedLand(t, db, alice.ID, "wheat", 5, nil)
	seedLand(t, db, bob.ID, "Corn", 8, f64(6))

	out, err := svc.Overview()
	require.NoError(t, err)

	assert.Equal(t, float64(23), out.TotalLand)
	assert.Equal(t, int64(3), out.ActiveFarmers, "inactive farmers excluded")
	assert.Equal(t, int64(1), out.GovernmentPartners)
	assert.Equal(t, float64(5), out.AverageYield, "null yields excluded from the average")

	// case variants merge under the lowercased crop name
	assert.Equal(t, map[string]int64{"wheat": 2, "corn": 1}, out.CropDistribution)

	// regions ordered by farmer count, land area from the declared profile totals
	require.Len(t, out.RegionalData, 2)
	assert.Equal(t, service.RegionStat{Region: "North", LandArea: 50, Farmers: 2}, out.RegionalData[0])
	assert.Equal(t, service.RegionStat{Region: "South", LandArea: 50, Farmers: 1}, out.RegionalData[1])
}

func TestOverviewIdempotent(t *testing.T) {
	svc, db := newTestSvc(t)
	alice := seedFarmer(t, db, "alice", "North", 30, 3)
	seedLand(t, db, alice.ID, "Wheat", 10, f64(4))

	first, err := svc.Overview()
	require.NoError(t, err)
	second, err := svc.Overview()
	require.NoError(t, err)
	assert.Equal(t, first, second, "read-only aggregation never changes state")
}

func TestLandSummary(t *testing.T) {
	svc, db := newTestSvc(t)
	alice := seedFarmer(t, db, "alice", "North", 30, 3)
	seedLand(t, db, alice.ID, "Wheat", 10, nil)
	seedLand(t, db, alice.ID, "Wheat", 6, nil)
	seedLand(t, db, alice.ID, "Corn", 8, nil)

	out, err := svc.LandSummary()
	require.NoError(t, err)

	assert.Equal(t, float64(24), out.TotalLandArea)
	assert.Equal(t, int64(3), out.TotalRecords)
	require.Len(t, out.CropDistribution, 2)
	assert.Equal(t, "Wheat", out.CropDistribution[0].Crop, "most frequent crop first")
	assert.Equal(t, int64(2), out.CropDistribution[0].Count)
	require.Len(t, out.StatusDistribution, 1)
	assert.Equal(t, "Active", out.StatusDistribution[0].Key)
}

func TestFarmersExperienceBuckets(t *testing.T) {
	svc, db := newTestSvc(t)
	seedFarmer(t, db, "a", "North", 10, 2, "Wheat")
	seedFarmer(t, db, "b", "North", 10, 4, "Wheat", "Corn")
	seedFarmer(t, db, "c", "South", 10, 7, "Corn")
	seedFarmer(t, db, "d", "South", 10, 15)

	out, err := svc.Farmers()
	require.NoError(t, err)

	assert.Equal(t, int64(4), out.TotalFarmers)
	assert.Equal(t, float64(40), out.TotalLandArea)

	got := map[string]int64{}
	for _, b := range out.FarmersByExperience {
		got[b.Key] = b.Count
	}
	assert.Equal(t, map[string]int64{
		"Beginner (0-5 years)":      2,
		"Intermediate (5-15 years)": 1,
		"Experienced (15+ years)":   1,
	}, got)

	require.NotEmpty(t, out.CropPreferences)
	assert.Equal(t, int64(2), out.CropPreferences[0].Count, "most preferred crop first")
}

func TestGovernmentPermissionsSummary(t *testing.T) {
	svc, db := newTestSvc(t)
	mk := func(name, dept string, perms ...string) {
		u := &entities.User{Name: name, Email: name + "@example.com", Password: "x",
			Role: policy.RoleGovernment, IsActive: true, Department: dept, Permissions: perms}
		require.NoError(t, db.Create(u).Error)
	}
	mk("g1", "Agriculture", "read", "write")
	mk("g2", "Agriculture", "read")
	mk("g3", "Finance", "read", "approve")

	out, err := svc.Government()
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.TotalOfficials)
	require.NotEmpty(t, out.OfficialsByDepartment)
	assert.Equal(t, "Agriculture", out.OfficialsByDepartment[0].Key)

	require.NotEmpty(t, out.PermissionsSummary)
	assert.Equal(t, service.NameCount{Key: "read", Count: 3}, out.PermissionsSummary[0])
}

func TestReportTypes(t *testing.T) {
	svc, db := newTestSvc(t)
	alice := seedFarmer(t, db, "alice", "North", 30, 3)
	seedLand(t, db, alice.ID, "Wheat", 10, f64(4))

	start := time.Now().AddDate(0, -1, 0)
	end := time.Now().AddDate(0, 0, 1)

	rep, err := svc.Report("land_summary", start, end)
	require.NoError(t, err)
	require.Len(t, rep.Data, 1, "land_summary is a single-row report")
	assert.Equal(t, int64(1), rep.Data[0].TotalLands)
	assert.Equal(t, float64(10), rep.Data[0].TotalArea)

	rep, err = svc.Report("farmer_activity", start, end)
	require.NoError(t, err)
	require.Len(t, rep.Data, 1)
	assert.Equal(t, "North", rep.Data[0].Key)

	rep, err = svc.Report("crop_performance", start, end)
	require.NoError(t, err)
	require.Len(t, rep.Data, 1)
	assert.Equal(t, "Wheat", rep.Data[0].Key)

	_, err = svc.Report("budget_forecast", start, end)
	assert.ErrorIs(t, err, service.ErrUnknownReportType)
}

func TestReportWindowExcludesOutsideRecords(t *testing.T) {
	svc, db := newTestSvc(t)
	alice := seedFarmer(t, db, "alice", "North", 30, 3)
	seedLand(t, db, alice.ID, "Wheat", 10, nil)
	require.NoError(t, db.Model(&entities.Land{}).Where("farmer_id = ?", alice.ID).
		Update("last_updated", time.Now().AddDate(-1, 0, 0)).Error)

	rep, err := svc.Report("land_summary", time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	require.Len(t, rep.Data, 1)
	assert.Zero(t, rep.Data[0].TotalLands)
}
