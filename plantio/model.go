package plantio

// Source column names as they appear in the tracking spreadsheet.
const (
	ColPRF          = "DESCRIÇÃO DO PRF"
	ColDivision     = "DIVISÃO"
	ColProject      = "PROJETO"
	ColPlantedPct   = "Plantio (%)"
	ColSeedlings    = "QDE de Mudas (UND)"
	ColPlantedHa    = "Plantio (ha)"
	ColRoadHa       = "Estrada(ha)"
	ColNativeVegHa  = "Vegetação Nativa(ha)"
	ColTotalHa      = "Total (ha)"
	ColYear         = "ANO"
	ColUnplantedPct = "Área Sem Plantio (%)"
	ColMortality    = "Mortalidade (Qtd.)"
	ColUtilization  = "Classe de Aproveitamento"
)

// MortalityRate is the empirical share of seedlings expected to die.
const MortalityRate = 0.0826

// Record is one PRF row of the tracking spreadsheet. Numeric fields hold NaN
// when the source cell is empty or not a number.
type Record struct {
	PRF                string
	Division           string
	Project            string
	PlantedPercent     float64
	SeedlingCount      float64
	PlantedAreaHa      float64
	RoadAreaHa         float64
	NativeVegetationHa float64
	TotalAreaHa        float64
	Year               *int

	// Derived by Derive and Classify.
	UnplantedPercent float64
	MortalityCount   float64
	UtilizationClass UtilizationClass
}

// Table is a loaded spreadsheet.
type Table struct {
	Source  string
	Columns []string
	Records []Record

	// Invalid counts cells per column that could not be parsed as numbers.
	Invalid map[string]int
}

// UtilizationClass buckets a planted percentage.
type UtilizationClass string

const (
	Class100     UtilizationClass = "100%"
	Class90to99  UtilizationClass = "90%-99%"
	Class80to89  UtilizationClass = "80%-89%"
	Class70to79  UtilizationClass = "70%-79%"
	Class60to69  UtilizationClass = "60%-69%"
	ClassBelow60 UtilizationClass = "<60%"
)

// Classes lists every utilization class from best to worst.
var Classes = []UtilizationClass{Class100, Class90to99, Class80to89, Class70to79, Class60to69, ClassBelow60}

// DivisionTotals holds the per-division sums used by the overview charts.
type DivisionTotals struct {
	Division           string
	Count              int
	TotalAreaHa        float64
	SeedlingCount      float64
	MortalityCount     float64
	RoadAreaHa         float64
	NativeVegetationHa float64
	PlantedAreaHa      float64
}

// ClassCount is the number of PRFs falling in a utilization class.
type ClassCount struct {
	Class UtilizationClass
	Count int
}
