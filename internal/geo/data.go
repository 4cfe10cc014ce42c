package geo

// Provinces of South Africa.
var Provinces = []Province{
	{ID: "western-cape", Name: "Western Cape"},
	{ID: "eastern-cape", Name: "Eastern Cape"},
	{ID: "northern-cape", Name: "Northern Cape"},
	{ID: "free-state", Name: "Free State"},
	{ID: "kwazulu-natal", Name: "KwaZulu-Natal"},
	{ID: "north-west", Name: "North West"},
	{ID: "gauteng", Name: "Gauteng"},
	{ID: "mpumalanga", Name: "Mpumalanga"},
	{ID: "limpopo", Name: "Limpopo"},
}

var Cities = []City{
	{ID: "cape-town", Name: "Cape Town", ProvinceID: "western-cape"},
	{ID: "stellenbosch", Name: "Stellenbosch", ProvinceID: "western-cape"},
	{ID: "paarl", Name: "Paarl", ProvinceID: "western-cape"},
	{ID: "george", Name: "George", ProvinceID: "western-cape"},

	{ID: "gqeberha", Name: "Gqeberha", ProvinceID: "eastern-cape"},
	{ID: "east-london", Name: "East London", ProvinceID: "eastern-cape"},
	{ID: "mthatha", Name: "Mthatha", ProvinceID: "eastern-cape"},

	{ID: "kimberley", Name: "Kimberley", ProvinceID: "northern-cape"},
	{ID: "upington", Name: "Upington", ProvinceID: "northern-cape"},

	{ID: "bloemfontein", Name: "Bloemfontein", ProvinceID: "free-state"},
	{ID: "welkom", Name: "Welkom", ProvinceID: "free-state"},

	{ID: "durban", Name: "Durban", ProvinceID: "kwazulu-natal"},
	{ID: "pietermaritzburg", Name: "Pietermaritzburg", ProvinceID: "kwazulu-natal"},
	{ID: "richards-bay", Name: "Richards Bay", ProvinceID: "kwazulu-natal"},

	{ID: "mahikeng", Name: "Mahikeng", ProvinceID: "north-west"},
	{ID: "rustenburg", Name: "Rustenburg", ProvinceID: "north-west"},
	{ID: "potchefstroom", Name: "Potchefstroom", ProvinceID: "north-west"},

	{ID: "johannesburg", Name: "Johannesburg", ProvinceID: "gauteng"},
	{ID: "pretoria", Name: "Pretoria", ProvinceID: "gauteng"},
	{ID: "ekurhuleni", Name: "Ekurhuleni", ProvinceID: "gauteng"},

	{ID: "mbombela", Name: "Mbombela", ProvinceID: "mpumalanga"},
	{ID: "emalahleni", Name: "eMalahleni", ProvinceID: "mpumalanga"},

	{ID: "polokwane", Name: "Polokwane", ProvinceID: "limpopo"},
	{ID: "thohoyandou", Name: "Thohoyandou", ProvinceID: "limpopo"},
}

var Branches = []Branch{
	{ID: "cape-town-cbd", Name: "Cape Town CBD", CityID: "cape-town"},
	{ID: "bellville", Name: "Bellville", CityID: "cape-town"},
	{ID: "tygervalley", Name: "Tygervalley", CityID: "cape-town"},
	{ID: "durbanville", Name: "Durbanville", CityID: "cape-town"},
	{ID: "wynberg", Name: "Wynberg", CityID: "cape-town"},
	{ID: "mitchells-plain", Name: "Mitchells Plain", CityID: "cape-town"},
	{ID: "stellenbosch", Name: "Stellenbosch", CityID: "stellenbosch"},
	{ID: "paarl", Name: "Paarl", CityID: "paarl"},
	{ID: "george", Name: "George", CityID: "george"},

	{ID: "gqeberha-central", Name: "Gqeberha Central", CityID: "gqeberha"},
	{ID: "walmer", Name: "Walmer", CityID: "gqeberha"},
	{ID: "east-london", Name: "East London", CityID: "east-london"},
	{ID: "beacon-bay", Name: "Beacon Bay", CityID: "east-london"},
	{ID: "mthatha", Name: "Mthatha", CityID: "mthatha"},

	{ID: "kimberley", Name: "Kimberley", CityID: "kimberley"},
	{ID: "upington", Name: "Upington", CityID: "upington"},

	{ID: "bloemfontein-central", Name: "Bloemfontein Central", CityID: "bloemfontein"},
	{ID: "brandwag", Name: "Brandwag", CityID: "bloemfontein"},
	{ID: "welkom", Name: "Welkom", CityID: "welkom"},

	{ID: "durban-central", Name: "Durban Central", CityID: "durban"},
	{ID: "umhlanga", Name: "Umhlanga", CityID: "durban"},
	{ID: "pinetown", Name: "Pinetown", CityID: "durban"},
	{ID: "pietermaritzburg", Name: "Pietermaritzburg", CityID: "pietermaritzburg"},
	{ID: "richards-bay", Name: "Richards Bay", CityID: "richards-bay"},

	{ID: "mahikeng", Name: "Mahikeng", CityID: "mahikeng"},
	{ID: "rustenburg", Name: "Rustenburg", CityID: "rustenburg"},
	{ID: "potchefstroom", Name: "Potchefstroom", CityID: "potchefstroom"},

	{ID: "johannesburg-cbd", Name: "Johannesburg CBD", CityID: "johannesburg"},
	{ID: "sandton", Name: "Sandton", CityID: "johannesburg"},
	{ID: "randburg", Name: "Randburg", CityID: "johannesburg"},
	{ID: "soweto", Name: "Soweto", CityID: "johannesburg"},
	{ID: "pretoria-central", Name: "Pretoria Central", CityID: "pretoria"},
	{ID: "centurion", Name: "Centurion", CityID: "pretoria"},
	{ID: "menlyn", Name: "Menlyn", CityID: "pretoria"},
	{ID: "germiston", Name: "Germiston", CityID: "ekurhuleni"},
	{ID: "benoni", Name: "Benoni", CityID: "ekurhuleni"},

	{ID: "mbombela", Name: "Mbombela", CityID: "mbombela"},
	{ID: "emalahleni", Name: "eMalahleni", CityID: "emalahleni"},

	{ID: "polokwane", Name: "Polokwane", CityID: "polokwane"},
	{ID: "thohoyandou", Name: "Thohoyandou", CityID: "thohoyandou"},
}

// Adjacency lists, per province, the provinces whose branches may be offered
// when nothing nearer has availability. It is a policy table rather than a
// map projection: entries are tried in the order written here.
var Adjacency = map[string][]string{
	"western-cape":  {"northern-cape", "eastern-cape", "gauteng"},
	"eastern-cape":  {"western-cape", "kwazulu-natal", "free-state", "northern-cape"},
	"northern-cape": {"western-cape", "north-west", "free-state", "eastern-cape"},
	"free-state":    {"gauteng", "north-west", "kwazulu-natal", "eastern-cape", "northern-cape", "mpumalanga"},
	"kwazulu-natal": {"eastern-cape", "free-state", "mpumalanga"},
	"north-west":    {"gauteng", "northern-cape", "free-state", "limpopo"},
	"gauteng":       {"north-west", "free-state", "mpumalanga", "limpopo"},
	"mpumalanga":    {"gauteng", "limpopo", "kwazulu-natal", "free-state"},
	"limpopo":       {"gauteng", "mpumalanga", "north-west"},
}
