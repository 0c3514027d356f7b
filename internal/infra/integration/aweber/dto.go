package aweber

// Subscriber is the provider's view of a lead, keyed by email. SelfLink is
// the absolute resource URL the API hands back; patch and tag calls go
// straight to it.
type Subscriber struct {
	ID       int64    `json:"id"`
	SelfLink string   `json:"self_link"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Tags     []string `json:"tags"`
}

func (s *Subscriber) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type CreateSubscriberInput struct {
	Email string
	Name  string
	Phone string
	Tags  []string
}

// --- wire payloads ---

type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	RefreshToken string `json:"refresh_token"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type findSubscribersResponse struct {
	Entries []Subscriber `json:"entries"`
}

type patchSubscriberRequest struct {
	Name         string            `json:"name"`
	CustomFields map[string]string `json:"custom_fields"`
}

type addTagRequest struct {
	Name string `json:"name"`
}

type createSubscriberRequest struct {
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	CustomFields map[string]string `json:"custom_fields"`
	Tags         []string          `json:"tags"`
	// The client already did its own existence check; letting the provider
	// merge on its side would race against it.
	UpdateExisting bool `json:"update_existing"`
}
