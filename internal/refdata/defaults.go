package refdata

// DefaultData returns the built-in Bhopal reference data set.
// Callers receive a fresh copy and may modify it before building a catalog.
func DefaultData() Data {
	return Data{
		Carriers: []Carrier{
			{Name: "Blue Dart", Domain: "bluedart.com", Hub: "Nagpur", BhopalAddress: "Zone II, MP Nagar", CareNumber: "1860-233-1234"},
			{Name: "Delhivery", Domain: "delhivery.com", Hub: "Indore", BhopalAddress: "Arera Colony", CareNumber: "1800-103-6354"},
			{Name: "DTDC", Domain: "dtdc.in", Hub: "Indore", BhopalAddress: "New Market", CareNumber: "1860-204-2222"},
			{Name: "FedEx", Domain: "fedex.com", Hub: "Mumbai", BhopalAddress: "Hoshangabad Road", CareNumber: "1800-209-6161"},
			{Name: "Gati", Domain: "gati.com", Hub: "Nagpur", BhopalAddress: "Transport Nagar", CareNumber: "1860-123-4284"},
			{Name: "XpressBees", Domain: "xpressbees.com", Hub: "Indore", BhopalAddress: "MP Nagar", CareNumber: "1800-203-1999"},
			{Name: "Safexpress", Domain: "safexpress.com", Hub: "Nagpur", BhopalAddress: "Bairagarh", CareNumber: "1800-113-113"},
			{Name: "Mahindra Logistics", Domain: "mahindralogistics.com", Hub: "Pune", BhopalAddress: "Mandideep Industrial Area", CareNumber: "1800-258-6787"},
			{Name: "TCI Express", Domain: "tciexpress.in", Hub: "Nagpur", BhopalAddress: "Govindpura Industrial Area", CareNumber: "1800-200-0977"},
			{Name: "VRL Logistics", Domain: "vrllogistics.in", Hub: "Ahmedabad", BhopalAddress: "Transport Nagar", CareNumber: "1800-599-8751"},
			{Name: "DHL", Domain: "dhl.com", Hub: "Mumbai", BhopalAddress: "Zone I, MP Nagar", CareNumber: "1800-209-1111"},
			{Name: "Ekart Logistics", Domain: "ekartlogistics.com", Hub: "Indore", BhopalAddress: "Piplani, BHEL", CareNumber: "1800-420-1111"},
			{Name: "Shadowfax", Domain: "shadowfax.in", Hub: "Indore", BhopalAddress: "Kolar Road", CareNumber: "1800-123-3232"},
			{Name: "Ecom Express", Domain: "ecomexpress.in", Hub: "Delhi", BhopalAddress: "Habib Ganj", CareNumber: "1800-102-6666"},
			{Name: "Rivigo", Domain: "rivigo.com", Hub: "Delhi", BhopalAddress: "ISBT Commercial Complex", CareNumber: "1800-121-8966"},
			{Name: "BlackBuck", Domain: "blackbuck.com", Hub: "Nagpur", BhopalAddress: "Transport Nagar", CareNumber: "1800-200-2456"},
			{Name: "LogisticStartup", Domain: "example.com", Hub: "Pune", BhopalAddress: "123 Innovation Road, Bhopal", CareNumber: "98765-43210", Promoted: true},
			{Name: "QuickMove", Domain: "qmove.com", Hub: "Nagpur", BhopalAddress: "Jahangirabad", CareNumber: "98765-11111"},
			{Name: "Bharat Connect", Domain: "bconnect.com", Hub: "Indore", BhopalAddress: "Berasia Road", CareNumber: "98765-22222"},
			{Name: "Reliable Wings", Domain: "rwings.com", Hub: "Mumbai", BhopalAddress: "Hamidia Road", CareNumber: "98765-33333"},
			{Name: "ValueShip", Domain: "valueship.com", Hub: "Ahmedabad", BhopalAddress: "Airport Road", CareNumber: "98765-44444"},
			{Name: "Apex Cargo", Domain: "apexcargo.com", Hub: "Delhi", BhopalAddress: "Vidisha Road", CareNumber: "98765-55555"},
			{Name: "GreenLine", Domain: "greenline.com", Hub: "Nagpur", BhopalAddress: "Raisen Road", CareNumber: "98765-66666"},
			{Name: "CityLink", Domain: "citylink.com", Hub: "Indore", BhopalAddress: "Ashoka Garden", CareNumber: "98765-77777"},
			{Name: "StarTrack", Domain: "startrack.com", Hub: "Mumbai", BhopalAddress: "Idgah Hills", CareNumber: "98765-88888"},
			{Name: "Indus Cargo", Domain: "induscargo.com", Hub: "Ahmedabad", BhopalAddress: "Karond", CareNumber: "98765-99999"},
			{Name: "Pioneer Express", Domain: "pexpress.com", Hub: "Delhi", BhopalAddress: "Shakti Nagar", CareNumber: "98765-10101"},
			{Name: "SwiftCargo", Domain: "scargo.com", Hub: "Nagpur", BhopalAddress: "Anand Nagar", CareNumber: "98765-12121"},
			{Name: "Doorstep Delivers", Domain: "ddelivers.com", Hub: "Indore", BhopalAddress: "Misrod", CareNumber: "98765-13131"},
			{Name: "National Freight", Domain: "nfreight.com", Hub: "Mumbai", BhopalAddress: "Ratibad", CareNumber: "98765-14141"},
			{Name: "Everest Logistics", Domain: "everestlog.com", Hub: "Ahmedabad", BhopalAddress: "Neelbad", CareNumber: "98765-15151"},
			{Name: "Samay Movers", Domain: "samaym.com", Hub: "Delhi", BhopalAddress: "Bhopal Talkies", CareNumber: "98765-16161"},
			{Name: "Prime Parcel", Domain: "primeparcel.com", Hub: "Nagpur", BhopalAddress: "Lalghati", CareNumber: "98765-17171"},
			{Name: "IndiaFast", Domain: "indiafast.com", Hub: "Indore", BhopalAddress: "TT Nagar", CareNumber: "98765-18181"},
			{Name: "SecureShip", Domain: "sship.com", Hub: "Mumbai", BhopalAddress: "Jahangirabad", CareNumber: "98765-19191"},
			{Name: "Budget Trans", Domain: "btrans.com", Hub: "Ahmedabad", BhopalAddress: "Berasia Road", CareNumber: "98765-20202"},
			{Name: "Air & Road", Domain: "aroad.com", Hub: "Delhi", BhopalAddress: "Hamidia Road", CareNumber: "98765-21212"},
			{Name: "Central Carriers", Domain: "ccarriers.com", Hub: "Nagpur", BhopalAddress: "Airport Road", CareNumber: "98765-23232"},
			{Name: "WestWind", Domain: "wwind.com", Hub: "Indore", BhopalAddress: "Vidisha Road", CareNumber: "98765-24242"},
			{Name: "Capital Connect", Domain: "cconnect.com", Hub: "Mumbai", BhopalAddress: "Raisen Road", CareNumber: "98765-25252"},
			{Name: "DirectLink", Domain: "dlink.com", Hub: "Ahmedabad", BhopalAddress: "Ashoka Garden", CareNumber: "98765-26262"},
			{Name: "RapidEx", Domain: "rapidex.com", Hub: "Delhi", BhopalAddress: "Idgah Hills", CareNumber: "98765-27272"},
			{Name: "TransIndia", Domain: "transindia.com", Hub: "Nagpur", BhopalAddress: "Karond", CareNumber: "98765-28282"},
			{Name: "Unity Logistics", Domain: "ulogistics.com", Hub: "Indore", BhopalAddress: "Shakti Nagar", CareNumber: "98765-29292"},
			{Name: "Vikas Transport", Domain: "vtransport.com", Hub: "Mumbai", BhopalAddress: "Anand Nagar", CareNumber: "98765-30303"},
			{Name: "Zenith Movers", Domain: "zmovers.com", Hub: "Ahmedabad", BhopalAddress: "Misrod", CareNumber: "98765-31313"},
		},
		Routes: []Route{
			{Origin: "Bhopal", Destination: "Indore", BasePrice: 200, BaseHours: 4},
			{Origin: "Bhopal", Destination: "Delhi", BasePrice: 800, BaseHours: 14},
			{Origin: "Bhopal", Destination: "Pune", BasePrice: 900, BaseHours: 16},
			{Origin: "Bhopal", Destination: "Ahmedabad", BasePrice: 600, BaseHours: 12},
			{Origin: "Bhopal", Destination: "Kolkata", BasePrice: 1500, BaseHours: 28},
		},
		Warehouses: []Warehouse{
			{Location: "Indore", Carrier: "Safexpress", SizeSqft: 150000},
			{Location: "Indore", Carrier: "Bharat Connect", SizeSqft: 60000},
			{Location: "Delhi", Carrier: "Delhivery", SizeSqft: 200000},
			{Location: "Delhi", Carrier: "Ecom Express", SizeSqft: 170000},
			{Location: "Pune", Carrier: "LogisticStartup", SizeSqft: 250000},
			{Location: "Pune", Carrier: "Mahindra Logistics", SizeSqft: 180000},
			{Location: "Ahmedabad", Carrier: "Gati", SizeSqft: 90000},
			{Location: "Ahmedabad", Carrier: "VRL Logistics", SizeSqft: 110000},
			{Location: "Kolkata", Carrier: "TCI Express", SizeSqft: 100000},
		},
		Reviews: []Review{
			// Indore: speed and cost specialists.
			{Origin: "Bhopal", Destination: "Indore", Carrier: "DTDC", Score: 4.8},
			{Origin: "Bhopal", Destination: "Indore", Carrier: "Delhivery", Score: 4.6},
			{Origin: "Bhopal", Destination: "Indore", Carrier: "XpressBees", Score: 4.5},
			{Origin: "Bhopal", Destination: "Indore", Carrier: "Blue Dart", Score: 4.2},
			// Delhi: premium services.
			{Origin: "Bhopal", Destination: "Delhi", Carrier: "Blue Dart", Score: 4.9},
			{Origin: "Bhopal", Destination: "Delhi", Carrier: "FedEx", Score: 4.8},
			{Origin: "Bhopal", Destination: "Delhi", Carrier: "DHL", Score: 4.7},
			{Origin: "Bhopal", Destination: "Delhi", Carrier: "DTDC", Score: 3.9},
			{Origin: "Bhopal", Destination: "Pune", Carrier: "LogisticStartup", Score: 5.0},
			{Origin: "Bhopal", Destination: "Pune", Carrier: "Mahindra Logistics", Score: 4.7},
			{Origin: "Bhopal", Destination: "Pune", Carrier: "QuickMove", Score: 4.5},
			{Origin: "Bhopal", Destination: "Pune", Carrier: "Delhivery", Score: 4.0},
			// Ahmedabad: regional players.
			{Origin: "Bhopal", Destination: "Ahmedabad", Carrier: "VRL Logistics", Score: 4.8},
			{Origin: "Bhopal", Destination: "Ahmedabad", Carrier: "Gati", Score: 4.6},
			{Origin: "Bhopal", Destination: "Ahmedabad", Carrier: "ValueShip", Score: 4.5},
			{Origin: "Bhopal", Destination: "Kolkata", Carrier: "TCI Express", Score: 4.7},
			{Origin: "Bhopal", Destination: "Kolkata", Carrier: "Safexpress", Score: 4.6},
			{Origin: "Bhopal", Destination: "Kolkata", Carrier: "Blue Dart", Score: 4.5},
			{Origin: "Bhopal", Destination: "Kolkata", Carrier: "Gati", Score: 4.1},
		},
		Locations: []Location{
			{Name: "MP Nagar", Point: Point{X: 0, Y: 0}},
			{Name: "Arera Colony", Point: Point{X: 2, Y: 3}},
			{Name: "New Market", Point: Point{X: -2, Y: 1}},
			{Name: "Kolar Road", Point: Point{X: 4, Y: 8}},
			{Name: "ISBT", Point: Point{X: 5, Y: 1}},
			{Name: "Mandideep", Point: Point{X: 10, Y: -5}, ColdStorage: true},
			{Name: "Habib Ganj", Point: Point{X: 3, Y: 0}},
			{Name: "Piplani", Point: Point{X: 7, Y: 2}, ColdStorage: true},
			{Name: "Bairagarh", Point: Point{X: -8, Y: 4}},
			{Name: "Shahpura", Point: Point{X: 1, Y: 6}},
			{Name: "Ayodhya Bypass", Point: Point{X: 8, Y: 4}},
			{Name: "Lalghati", Point: Point{X: -5, Y: 3}},
		},
		Conditions: []Condition{
			{From: "MP Nagar", To: "Arera Colony", Distance: 5, RoadQuality: 1.0, TrafficFactor: 1.8},
			{From: "MP Nagar", To: "New Market", Distance: 3, RoadQuality: 0.8, TrafficFactor: 2.0},
			{From: "Arera Colony", To: "Kolar Road", Distance: 6, RoadQuality: 0.9, TrafficFactor: 1.2},
			{From: "New Market", To: "Bairagarh", Distance: 10, RoadQuality: 0.6, TrafficFactor: 1.5},
			{From: "ISBT", To: "Mandideep", Distance: 15, RoadQuality: 0.7, TrafficFactor: 1.8},
			{From: "Habib Ganj", To: "Piplani", Distance: 5, RoadQuality: 1.0, TrafficFactor: 1.6},
			{From: "Shahpura", To: "Kolar Road", Distance: 3, RoadQuality: 1.0, TrafficFactor: 1.4},
			{From: "Ayodhya Bypass", To: "Piplani", Distance: 4, RoadQuality: 0.9, TrafficFactor: 1.9},
		},
	}
}

// Default returns a catalog built from DefaultData.
// It panics only if the built-in data is invalid, which tests guard against.
func Default() *Catalog {
	c, err := NewCatalog(DefaultData())
	if err != nil {
		panic(err)
	}
	return c
}
