package serviceImp

import (
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"greenlands/entities"
	"greenlands/pkg/analytics/service"
)

// Placeholder metrics carried until real historical data is ingested. The
// dashboards render them as-is.
const (
	placeholderSustainability = 92
	placeholderMonthlyGrowth  = 12.5
)

type Svc struct{ db *gorm.DB }

func New(db *gorm.DB) service.AnalyticsService { return &Svc{db} }

func (s *Svc) Overview() (*service.Overview, error) {
	out := &service.Overview{
		SustainabilityScore: placeholderSustainability,
		MonthlyGrowth:       placeholderMonthlyGrowth,
		CropDistribution:    map[string]int64{},
		RegionalData:        []service.RegionStat{},
	}

	if err := s.db.Model(&entities.User{}).
		Where("role = ? AND is_active = ?", "farmer", true).
		Count(&out.ActiveFarmers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&entities.User{}).
		Where("role = ? AND is_active = ?", "government", true).
		Count(&out.GovernmentPartners).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&entities.Land{}).
		Select("COALESCE(SUM(area), 0)").Scan(&out.TotalLand).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&entities.Land{}).
		Where("actual_yield IS NOT NULL").
		Select("COALESCE(AVG(actual_yield), 0)").Scan(&out.AverageYield).Error; err != nil {
		return nil, err
	}

	// lowercased crop -> parcel count; case variants merge by summing
	var crops []struct {
		Crop  string
		Count int64
	}
	if err := s.db.Model(&entities.Land{}).
		Select("crop, COUNT(*) AS count").Group("crop").Scan(&crops).Error; err != nil {
		return nil, err
	}
	for _, row := range crops {
		out.CropDistribution[strings.ToLower(row.Crop)] += row.Count
	}

	var regions []struct {
		Location string
		Farmers  int64
		Area     float64
	}
	if err := s.db.Model(&entities.User{}).
		Select("location, COUNT(*) AS farmers, COALESCE(SUM(farm_total_land_area), 0) AS area").
		Where("role = ? AND is_active = ?", "farmer", true).
		Group("location").Order("farmers DESC").Scan(&regions).Error; err != nil {
		return nil, err
	}
	for _, row := range regions {
		out.RegionalData = append(out.RegionalData, service.RegionStat{
			Region:   row.Location,
			LandArea: row.Area,
			Farmers:  row.Farmers,
		})
	}
	return out, nil
}

func (s *Svc) landStats() (service.LandStats, error) {
	var st service.LandStats
	err := s.db.Model(&entities.Land{}).
		Select("COALESCE(SUM(area), 0) AS total_area, COUNT(*) AS total_lands, COALESCE(AVG(area), 0) AS avg_area").
		Scan(&st).Error
	return st, err
}

func (s *Svc) cropStats(order string) ([]service.CropStat, error) {
	var rows []struct {
		Crop      string
		Count     int64
		TotalArea float64
		AvgYield  float64
	}
	err := s.db.Model(&entities.Land{}).
		Select("crop, COUNT(*) AS count, COALESCE(SUM(area), 0) AS total_area, COALESCE(AVG(actual_yield), 0) AS avg_yield").
		Group("crop").Order(order).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]service.CropStat, 0, len(rows))
	for _, r := range rows {
		out = append(out, service.CropStat{Crop: r.Crop, Count: r.Count, TotalArea: r.TotalArea, AvgYield: r.AvgYield})
	}
	return out, nil
}

func (s *Svc) landGroup(column string) ([]service.NameCount, error) {
	var rows []struct {
		Key   string
		Count int64
	}
	err := s.db.Model(&entities.Land{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).Order("count DESC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]service.NameCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, service.NameCount{Key: r.Key, Count: r.Count})
	}
	return out, nil
}

func (s *Svc) Land() (*service.LandAnalytics, error) {
	st, err := s.landStats()
	if err != nil {
		return nil, err
	}
	crops, err := s.cropStats("total_area DESC")
	if err != nil {
		return nil, err
	}
	statuses, err := s.landGroup("status")
	if err != nil {
		return nil, err
	}
	soils, err := s.landGroup("soil_type")
	if err != nil {
		return nil, err
	}
	return &service.LandAnalytics{
		LandStats:     st,
		CropStats:     crops,
		StatusStats:   statuses,
		SoilTypeStats: soils,
	}, nil
}

func (s *Svc) LandSummary() (*service.LandSummary, error) {
	st, err := s.landStats()
	if err != nil {
		return nil, err
	}
	crops, err := s.cropStats("count DESC")
	if err != nil {
		return nil, err
	}
	statuses, err := s.landGroup("status")
	if err != nil {
		return nil, err
	}
	return &service.LandSummary{
		TotalLandArea:      st.TotalArea,
		TotalRecords:       st.TotalLands,
		CropDistribution:   crops,
		StatusDistribution: statuses,
	}, nil
}

func (s *Svc) userGroup(column, role string) ([]service.NameCount, error) {
	var rows []struct {
		Key   string
		Count int64
	}
	err := s.db.Model(&entities.User{}).
		Select(column+" AS key, COUNT(*) AS count").
		Where("role = ? AND is_active = ?", role, true).
		Group(column).Order("count DESC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]service.NameCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, service.NameCount{Key: r.Key, Count: r.Count})
	}
	return out, nil
}

// experience buckets match the legacy dashboard labels
func experienceBucket(years int) string {
	switch {
	case years < 5:
		return "Beginner (0-5 years)"
	case years < 15:
		return "Intermediate (5-15 years)"
	default:
		return "Experienced (15+ years)"
	}
}

func (s *Svc) Farmers() (*service.FarmerAnalytics, error) {
	out := &service.FarmerAnalytics{
		FarmersByLocation:   []service.NameCount{},
		FarmersByExperience: []service.NameCount{},
		CropPreferences:     []service.NameCount{},
	}
	if err := s.db.Model(&entities.User{}).
		Where("role = ? AND is_active = ?", "farmer", true).
		Count(&out.TotalFarmers).Error; err != nil {
		return nil, err
	}
	var err error
	if out.FarmersByLocation, err = s.userGroup("location", "farmer"); err != nil {
		return nil, err
	}
	if err := s.db.Model(&entities.User{}).
		Where("role = ? AND is_active = ?", "farmer", true).
		Select("COALESCE(SUM(farm_total_land_area), 0)").
		Scan(&out.TotalLandArea).Error; err != nil {
		return nil, err
	}

	// experience buckets and crop preferences unwind profile fields in code
	var farmers []entities.User
	if err := s.db.Where("role = ? AND is_active = ?", "farmer", true).Find(&farmers).Error; err != nil {
		return nil, err
	}
	buckets := map[string]int64{}
	cropCounts := map[string]int64{}
	for _, f := range farmers {
		buckets[experienceBucket(f.FarmDetails.Experience)]++
		for _, crop := range f.FarmDetails.Crops {
			cropCounts[crop]++
		}
	}
	for k, n := range buckets {
		out.FarmersByExperience = append(out.FarmersByExperience, service.NameCount{Key: k, Count: n})
	}
	sort.Slice(out.FarmersByExperience, func(i, j int) bool {
		return out.FarmersByExperience[i].Key < out.FarmersByExperience[j].Key
	})
	for k, n := range cropCounts {
		out.CropPreferences = append(out.CropPreferences, service.NameCount{Key: k, Count: n})
	}
	sort.Slice(out.CropPreferences, func(i, j int) bool {
		if out.CropPreferences[i].Count != out.CropPreferences[j].Count {
			return out.CropPreferences[i].Count > out.CropPreferences[j].Count
		}
		return out.CropPreferences[i].Key < out.CropPreferences[j].Key
	})
	return out, nil
}

func (s *Svc) Government() (*service.GovernmentAnalytics, error) {
	out := &service.GovernmentAnalytics{
		OfficialsByDepartment: []service.NameCount{},
		OfficialsByPosition:   []service.NameCount{},
		PermissionsSummary:    []service.NameCount{},
	}
	if err := s.db.Model(&entities.User{}).
		Where("role = ? AND is_active = ?", "government", true).
		Count(&out.TotalOfficials).Error; err != nil {
		return nil, err
	}
	var err error
	if out.OfficialsByDepartment, err = s.userGroup("department", "government"); err != nil {
		return nil, err
	}
	if out.OfficialsByPosition, err = s.userGroup("position", "government"); err != nil {
		return nil, err
	}

	var officials []entities.User
	if err := s.db.Where("role = ? AND is_active = ?", "government", true).Find(&officials).Error; err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, o := range officials {
		for _, p := range o.Permissions {
			counts[p]++
		}
	}
	for k, n := range counts {
		out.PermissionsSummary = append(out.PermissionsSummary, service.NameCount{Key: k, Count: n})
	}
	sort.Slice(out.PermissionsSummary, func(i, j int) bool {
		if out.PermissionsSummary[i].Count != out.PermissionsSummary[j].Count {
			return out.PermissionsSummary[i].Count > out.PermissionsSummary[j].Count
		}
		return out.PermissionsSummary[i].Key < out.PermissionsSummary[j].Key
	})
	return out, nil
}

// Trends returns the fixed six-month placeholder series the dashboards chart
// until real history exists.
func (s *Svc) Trends() *service.Trends {
	series := func(vals ...float64) []service.TrendPoint {
		months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
		out := make([]service.TrendPoint, len(vals))
		for i, v := range vals {
			out[i] = service.TrendPoint{Month: months[i], Value: v}
		}
		return out
	}
	return &service.Trends{
		LandGrowth:          series(1200, 1250, 1300, 1350, 1400, 1450),
		FarmerGrowth:        series(140, 145, 150, 152, 155, 156),
		YieldTrends:         series(80, 82, 85, 87, 89, 92),
		SustainabilityScore: series(88, 89, 90, 91, 91, 92),
	}
}

func (s *Svc) Report(reportType string, start, end time.Time) (*service.Report, error) {
	rep := &service.Report{
		Type:        reportType,
		StartDate:   start.Format("2006-01-02"),
		EndDate:     end.Format("2006-01-02"),
		Data:        []service.ReportRow{},
		GeneratedAt: time.Now(),
	}

	switch reportType {
	case "land_summary":
		var row struct {
			TotalLands int64
			TotalArea  float64
			AvgArea    float64
		}
		err := s.db.Model(&entities.Land{}).
			Where("last_updated BETWEEN ? AND ?", start, end).
			Select("COUNT(*) AS total_lands, COALESCE(SUM(area), 0) AS total_area, COALESCE(AVG(area), 0) AS avg_area").
			Scan(&row).Error
		if err != nil {
			return nil, err
		}
		rep.Data = append(rep.Data, service.ReportRow{
			TotalLands: row.TotalLands,
			TotalArea:  row.TotalArea,
			AvgArea:    row.AvgArea,
		})

	case "farmer_activity":
		var rows []struct {
			Location string
			Farmers  int64
			Area     float64
		}
		err := s.db.Model(&entities.User{}).
			Where("role = ? AND is_active = ? AND last_login BETWEEN ? AND ?", "farmer", true, start, end).
			Select("location, COUNT(*) AS farmers, COALESCE(SUM(farm_total_land_area), 0) AS area").
			Group("location").Order("farmers DESC").Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			rep.Data = append(rep.Data, service.ReportRow{
				Key:           r.Location,
				Farmers:       r.Farmers,
				TotalLandArea: r.Area,
			})
		}

	case "crop_performance":
		var rows []struct {
			Crop       string
			Count      int64
			TotalArea  float64
			AvgYield   float64
			TotalYield float64
		}
		err := s.db.Model(&entities.Land{}).
			Where("last_updated BETWEEN ? AND ?", start, end).
			Select("crop, COUNT(*) AS count, COALESCE(SUM(area), 0) AS total_area, COALESCE(AVG(actual_yield), 0) AS avg_yield, COALESCE(SUM(actual_yield), 0) AS total_yield").
			Group("crop").Order("total_area DESC").Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			rep.Data = append(rep.Data, service.ReportRow{
				Key:        r.Crop,
				Count:      r.Count,
				TotalArea:  r.TotalArea,
				AvgYield:   r.AvgYield,
				TotalYield: r.TotalYield,
			})
		}

	default:
		return nil, service.ErrUnknownReportType
	}
	return rep, nil
}
