package booking

// GovService is a counter service an applicant can book time for.
type GovService struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Services is the list offered on the service selection step.
var Services = []GovService{
	{ID: "smart-id-card", Name: "Smart ID card application", Category: "identity"},
	{ID: "id-replacement", Name: "Replacement ID", Category: "identity"},
	{ID: "passport", Name: "Passport application", Category: "travel"},
	{ID: "passport-collection", Name: "Passport collection", Category: "travel"},
	{ID: "birth-certificate", Name: "Unabridged birth certificate", Category: "civic"},
	{ID: "marriage-certificate", Name: "Marriage certificate", Category: "civic"},
	{ID: "death-certificate", Name: "Death certificate", Category: "civic"},
	{ID: "citizenship", Name: "Citizenship confirmation", Category: "civic"},
}

var servicesByID = func() map[string]GovService {
	m := make(map[string]GovService, len(Services))
	for _, s := range Services {
		m[s.ID] = s
	}
	return m
}()

// LookupService returns the service with the given id.
func LookupService(id string) (GovService, bool) {
	s, ok := servicesByID[id]
	return s, ok
}
