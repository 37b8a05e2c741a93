// Package public holds the JSON resources served and accepted by the API.
package public

// ObjectReference is embedded in every served resource.
type ObjectReference struct {
	Id   string `json:"id"`
	Kind string `json:"kind"`
	Href string `json:"href"`
}
