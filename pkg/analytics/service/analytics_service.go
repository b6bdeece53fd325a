// Package service declares the aggregation payload contracts. Field names
// are load-bearing: dashboard views destructure them with fallback defaults,
// so a missing key renders a silent zero instead of an error. Keep shapes
// stable and default absent data to zero values, never fail.
package service

import (
	"errors"
	"time"
)

var ErrUnknownReportType = errors.New("invalid report type")

type RegionStat struct {
	Region   string  `json:"region"`
	LandArea float64 `json:"landArea"`
	Farmers  int64   `json:"farmers"`
}

// Overview feeds every top-level dashboard.
type Overview struct {
	TotalLand          float64 `json:"totalLand"`
	ActiveFarmers      int64   `json:"activeFarmers"`
	GovernmentPartners int64   `json:"governmentPartners"`
	AverageYield       float64 `json:"averageYield"`
	// Placeholder metrics until historical data exists; constants, labeled
	// in the implementation.
	SustainabilityScore float64 `json:"sustainabilityScore"`
	MonthlyGrowth       float64 `json:"monthlyGrowth"`

	// lowercased crop name -> parcel count; consumers derive percentages
	CropDistribution map[string]int64 `json:"cropDistribution"`
	// one entry per distinct farmer location, farmers descending; landArea
	// is the profile-declared figure, not a sum over land records
	RegionalData []RegionStat `json:"regionalData"`
}

// Grouped rows keep the legacy "_id" key the dashboards destructure.

type NameCount struct {
	Key   string `json:"_id"`
	Count int64  `json:"count"`
}

type CropStat struct {
	Crop      string  `json:"_id"`
	Count     int64   `json:"count"`
	TotalArea float64 `json:"totalArea"`
	AvgYield  float64 `json:"avgYield"`
}

type LandStats struct {
	TotalArea  float64 `json:"totalArea"`
	TotalLands int64   `json:"totalLands"`
	AvgArea    float64 `json:"avgArea"`
}

type LandAnalytics struct {
	LandStats     LandStats   `json:"landStats"`
	CropStats     []CropStat  `json:"cropStats"`
	StatusStats   []NameCount `json:"statusStats"`
	SoilTypeStats []NameCount `json:"soilTypeStats"`
}

type LandSummary struct {
	TotalLandArea      float64     `json:"totalLandArea"`
	TotalRecords       int64       `json:"totalRecords"`
	CropDistribution   []CropStat  `json:"cropDistribution"`
	StatusDistribution []NameCount `json:"statusDistribution"`
}

type FarmerAnalytics struct {
	TotalFarmers        int64       `json:"totalFarmers"`
	FarmersByLocation   []NameCount `json:"farmersByLocation"`
	FarmersByExperience []NameCount `json:"farmersByExperience"`
	TotalLandArea       float64     `json:"totalLandArea"`
	CropPreferences     []NameCount `json:"cropPreferences"`
}

type GovernmentAnalytics struct {
	TotalOfficials        int64       `json:"totalOfficials"`
	OfficialsByDepartment []NameCount `json:"officialsByDepartment"`
	OfficialsByPosition   []NameCount `json:"officialsByPosition"`
	PermissionsSummary    []NameCount `json:"permissionsSummary"`
}

type TrendPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

type Trends struct {
	LandGrowth          []TrendPoint `json:"landGrowth"`
	FarmerGrowth        []TrendPoint `json:"farmerGrowth"`
	YieldTrends         []TrendPoint `json:"yieldTrends"`
	SustainabilityScore []TrendPoint `json:"sustainabilityScore"`
}

type ReportRow struct {
	Key           string  `json:"_id"`
	Count         int64   `json:"count,omitempty"`
	Farmers       int64   `json:"farmers,omitempty"`
	TotalArea     float64 `json:"totalArea,omitempty"`
	AvgArea       float64 `json:"avgArea,omitempty"`
	AvgYield      float64 `json:"avgYield,omitempty"`
	TotalYield    float64 `json:"totalYield,omitempty"`
	TotalLandArea float64 `json:"totalLandArea,omitempty"`
	TotalLands    int64   `json:"totalLands,omitempty"`
}

type Report struct {
	Type        string      `json:"type"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	Data        []ReportRow `json:"data"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

type AnalyticsService interface {
	Overview() (*Overview, error)
	Land() (*LandAnalytics, error)
	LandSummary() (*LandSummary, error)
	Farmers() (*FarmerAnalytics, error)
	Government() (*GovernmentAnalytics, error)
	Trends() *Trends
	// Report types: land_summary, farmer_activity, crop_performance.
	Report(reportType string, start, end time.Time) (*Report, error)
}
