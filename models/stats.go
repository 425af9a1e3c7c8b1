package models

// CountStat is a {_id, count} group
type CountStat struct {
	ID    string `json:"_id"`
	Count int    `json:"count"`
}

// CategoryStat is a {_id, count, totalQuantity} group over food categories
type CategoryStat struct {
	ID            string  `json:"_id"`
	Count         int     `json:"count"`
	TotalQuantity float64 `json:"totalQuantity"`
}

type DonationOverview struct {
	Total           int     `json:"total"`
	Pending         int     `json:"pending"`
	Accepted        int     `json:"accepted"`
	Distributed     int     `json:"distributed"`
	CarbonFootprint float64 `json:"carbonFootprint"`
}

type FoodOverview struct {
	Total         int            `json:"total"`
	LowStock      int            `json:"lowStock"`
	Expired       int            `json:"expired"`
	CategoryStats []CategoryStat `json:"categoryStats"`
}

type NGOOverview struct {
	Total               int         `json:"total"`
	Active              int         `json:"active"`
	Pending             int         `json:"pending"`
	BeneficiariesServed int         `json:"beneficiariesServed"`
	ServiceAreaStats    []CountStat `json:"serviceAreaStats"`
}

type CommunicationOverview struct {
	Total        int         `json:"total"`
	Unread       int         `json:"unread"`
	HighPriority int         `json:"highPriority"`
	TypeStats    []CountStat `json:"typeStats"`
	StatusStats  []CountStat `json:"statusStats"`
}

// DashboardKPIs is the headline block of the dashboard
type DashboardKPIs struct {
	TotalMealsDonated      float64 `json:"totalMealsDonated"`
	ActiveNGOPartners      int     `json:"activeNGOPartners"`
	CarbonFootprintReduced float64 `json:"carbonFootprintReduced"`
	SuccessRate            float64 `json:"successRate"`
}

type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type MonthlyTrend struct {
	ID            MonthKey `json:"_id"`
	Donations     int      `json:"donations"`
	TotalQuantity float64  `json:"totalQuantity"`
}

type NGOPerformance struct {
	ID             string  `json:"_id"`
	NGOName        string  `json:"ngoName"`
	TotalDonations int     `json:"totalDonations"`
	TotalQuantity  float64 `json:"totalQuantity"`
	SuccessRate    float64 `json:"successRate"`
}

// CustomReport holds only the requested facets; a nil facet is omitted
type CustomReport struct {
	Donations *[]PopulatedDonation `json:"donations,omitempty"`
	FoodItems *[]FoodItem          `json:"foodItems,omitempty"`
	NGOs      *[]NGO               `json:"ngos,omitempty"`
}
