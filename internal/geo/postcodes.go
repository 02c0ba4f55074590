package geo

// Coord is a latitude/longitude pair in degrees.
type Coord struct {
	Lat float64
	Lng float64
}

// postcodeCoords maps Australian postcodes covering the chain's footprint to
// an approximate centroid. Bundled reference data, used as a fallback when a
// gym row has no stored coordinates.
var postcodeCoords = map[string]Coord{
	// Western Australia
	"6000": {-31.9523, 115.8613}, // Perth
	"6005": {-31.9490, 115.8420}, // West Perth
	"6008": {-31.9570, 115.8080}, // Subiaco
	"6009": {-31.9810, 115.8180}, // Nedlands
	"6014": {-31.9360, 115.7900}, // Wembley
	"6017": {-31.9030, 115.8010}, // Osborne Park
	"6018": {-31.8890, 115.7800}, // Innaloo
	"6019": {-31.8980, 115.7580}, // Scarborough
	"6021": {-31.8620, 115.8060}, // Balcatta
	"6025": {-31.7960, 115.7440}, // Hillarys
	"6027": {-31.7650, 115.7680}, // Joondalup
	"6028": {-31.7460, 115.7360}, // Burns Beach
	"6030": {-31.6940, 115.7060}, // Clarkson
	"6050": {-31.9230, 115.8700}, // Mount Lawley
	"6053": {-31.9110, 115.9060}, // Bayswater
	"6056": {-31.8880, 116.0150}, // Midland
	"6061": {-31.8540, 115.8430}, // Balga
	"6062": {-31.8760, 115.8970}, // Morley
	"6065": {-31.7940, 115.8030}, // Wanneroo
	"6100": {-31.9700, 115.8940}, // Victoria Park
	"6107": {-32.0120, 115.9380}, // Cannington
	"6110": {-32.0460, 115.9350}, // Gosnells
	"6112": {-32.1500, 116.0140}, // Armadale
	"6147": {-32.0340, 115.9130}, // Langford
	"6150": {-32.0500, 115.8350}, // Murdoch
	"6155": {-32.0580, 115.8990}, // Canning Vale
	"6163": {-32.0850, 115.7840}, // Hamilton Hill
	"6164": {-32.1230, 115.8440}, // Success
	"6167": {-32.1850, 115.8240}, // Kwinana
	"6168": {-32.2770, 115.7350}, // Rockingham
	"6210": {-32.5280, 115.7220}, // Mandurah
	"6230": {-33.3270, 115.6410}, // Bunbury
	// South Australia
	"5000": {-34.9285, 138.6007}, // Adelaide
	"5008": {-34.8930, 138.5420}, // Croydon
	"5031": {-34.9320, 138.5660}, // Mile End
	"5038": {-34.9610, 138.5440}, // Plympton
	"5045": {-34.9820, 138.5160}, // Glenelg
	"5063": {-34.9500, 138.6220}, // Parkside
	"5082": {-34.8830, 138.5940}, // Prospect
	"5095": {-34.8090, 138.6620}, // Mawson Lakes
	"5108": {-34.7680, 138.6440}, // Salisbury
	"5159": {-35.0590, 138.5680}, // Aberfoyle Park
	"5162": {-35.1160, 138.4970}, // Morphett Vale
}
