package agriassist

import "net/http"

// Event is one curated agriculture event.
type Event struct {
	Title       string `json:"title"`
	Meta        string `json:"meta"`
	Name        string `json:"name"`
	Dates       string `json:"dates"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Curated 2025 agriculture events, kept server-side so the list can be
// refreshed without a client release.
var curatedEvents = []Event{
	{
		Title:       "Indusfood Agritech 2025",
		Meta:        "January 8-10 · Yashobhoomi, IICC, Dwarka, New Delhi",
		Name:        "Indusfood Agritech 2025",
		Dates:       "January 8-10",
		Location:    "Yashobhoomi, IICC, Dwarka, New Delhi",
		Description: "Global B2B expo on agriculture, aquaculture, dairy, and poultry tech with 600+ exhibitors and 30,000 visitors.",
		Type:        "Expo",
	},
	{
		Title:       "Sustainable Agriculture & Food Processing Growth Summit & Expo 2025",
		Meta:        "January 17-18 · Kerala Agricultural University, Thrissur, Kerala",
		Name:        "Sustainable Agriculture & Food Processing Growth Summit & Expo 2025",
		Dates:       "January 17-18",
		Location:    "Kerala Agricultural University, Thrissur, Kerala",
		Description: "Focuses on agro-processing and FPOs with 100+ stalls and 30,000 participants.",
		Type:        "Summit & Expo",
	},
	{
		Title:       "Bharat Agri Tech 2025",
		Meta:        "January 18-20 · College of Agriculture Ground, Indore, Madhya Pradesh",
		Name:        "Bharat Agri Tech 2025",
		Dates:       "January 18-20",
		Location:    "College of Agriculture Ground, Indore, Madhya Pradesh",
		Description: "Highlights agri-tech, horticulture, dairy, and organics for B2B/B2C interactions.",
		Type:        "Tech Expo",
	},
	{
		Title:       "Agri Intex 2025",
		Meta:        "July 10-14 · CODISSIA Trade Fair Complex, Coimbatore, Tamil Nadu",
		Name:        "Agri Intex 2025",
		Dates:       "July 10-14",
		Location:    "CODISSIA Trade Fair Complex, Coimbatore, Tamil Nadu",
		Description: "Covers agriculture, horticulture, dairy, and food processing tech.",
		Type:        "Trade Fair",
	},
	{
		Title:       "AgriTech India 2025",
		Meta:        "August 1-3 · Bangalore International Exhibition Centre (BIEC), Bangalore",
		Name:        "AgriTech India 2025",
		Dates:       "August 1-3",
		Location:    "Bangalore International Exhibition Centre (BIEC), Bangalore",
		Description: "Premier show on farm machinery, livestock, and processing with 350+ stalls and concurrent events like DairyTech India.",
		Type:        "Agritech Expo",
	},
	{
		Title:       "BASAI 2025 – Future of Sustainable Agriculture",
		Meta:        "September 22-23 · India Habitat Centre, New Delhi",
		Name:        "BASAI 2025 – Future of Sustainable Agriculture",
		Dates:       "September 22-23",
		Location:    "India Habitat Centre, New Delhi",
		Description: "Explores biofertilizers, biopesticides, AI, and climate-resilient farming with expert panels.",
		Type:        "Conference",
	},
	{
		Title:       "Kamdhenu Gau Krishi Mahotsav (KGKM)",
		Meta:        "November 6-9 · near Leisure Valley Park, Gurugram, Haryana",
		Name:        "Kamdhenu Gau Krishi Mahotsav (KGKM)",
		Dates:       "November 6-9",
		Location:    "near Leisure Valley Park, Gurugram, Haryana",
		Description: "Promotes indigenous cow breeds and sustainable practices.",
		Type:        "Mahotsav",
	},
	{
		Title:       "KISAN Agri Show 2025",
		Meta:        "December 10-14 · PIECC, Moshi, Pune",
		Name:        "KISAN Agri Show 2025",
		Dates:       "December 10-14",
		Location:    "PIECC, Moshi, Pune",
		Description: "India's largest agri expo with 1.5 lakh visitors showcasing farm tech innovations.",
		Type:        "Agri Show",
	},
}

// HandleEvents serves the curated events list.
func HandleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, curatedEvents)
}
