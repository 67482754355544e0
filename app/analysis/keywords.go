package analysis

import (
	"strings"
)

// TopicList is the static topic vocabulary. An article is tagged with
// every topic whose name appears in its text, case-insensitively.
var TopicList = []string{
	// Upstream
	"Exploration", "Seismic Surveys", "Reservoir Engineering", "Drilling", "Well Logging",
	"Well Intervention", "Well Completion", "Hydraulic Fracturing", "Production Optimization",
	"Enhanced Oil Recovery", "Shale Gas", "Oil Sands", "Deepwater", "Offshore Drilling",
	"FPSO", "Directional Drilling",
	// Midstream
	"Pipeline Transportation", "Pipeline Safety", "Gas Processing", "Liquefied Natural Gas",
	"Compressor Stations", "Crude Transport", "Permian Basin", "Hydrogen Blending",
	// Downstream
	"Refining", "Petrochemicals", "Retail Fuels", "LNG Export", "Crude Oil Pricing",
	"Trading and Supply", "Turnarounds", "Sulfur Recovery",
	// Energy transition & emissions
	"Carbon Capture", "CCUS", "Hydrogen", "Blue Hydrogen", "Green Hydrogen",
	"Methane Emissions", "Flaring Reduction", "Energy Transition", "Decarbonization",
	"Net Zero", "Carbon Markets", "CO2 Sequestration", "CO2 Storage", "Greenhouse Gas",
	// Renewables & integration
	"Wind Energy", "Solar Integration", "Geothermal", "Biofuels", "Hybrid Energy Systems",
	"Photovoltaics", "Clean Energy", "Renewable Integration",
	// Digitalization
	"Digital Oilfield", "AI in Energy", "Machine Learning", "Predictive Maintenance",
	"Remote Monitoring", "Automation", "IoT in Energy", "Digital Twin",
	// Power systems
	"Electricity", "Smart Grid", "Load Forecasting", "Power Generation",
	"Grid Resilience", "Distributed Energy", "Energy Efficiency",
	// Policy & markets
	"Oil Prices", "Energy Policy", "Energy Markets", "Energy Security",
	"Environmental Compliance", "Energy Investment", "OPEC",
	"Emissions Reporting", "Energy Innovation", "ESG", "Safety", "HSE",
	"Strategic Reserve",
}

// energyCoreTerms are broad industry words that mark an article as
// energy-related even when no specific topic name appears.
var energyCoreTerms = []string{
	"oil", "gas", "energy", "petroleum", "refinery", "pipeline", "drilling",
	"upstream", "midstream", "downstream", "wellbore", "wellhead", "subsea",
	"offshore", "onshore", "rig", "lng", "cng", "methane", "fuel",
	"renewable", "solar", "wind", "carbon", "emission", "turbine",
	"hydrogen", "electricity", "brent", "wti", "opec", "fracking",
}

// EnergyKeywords is the lowercase relevance vocabulary: every topic
// name plus the core industry terms.
var EnergyKeywords = buildEnergyKeywords()

func buildEnergyKeywords() []string {
	keywords := make([]string, 0, len(TopicList)+len(energyCoreTerms))
	for _, topic := range TopicList {
		keywords = append(keywords, strings.ToLower(topic))
	}
	keywords = append(keywords, energyCoreTerms...)
	return keywords
}
