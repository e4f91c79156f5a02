package models

// Envelope mirrors every response from the Castro Fallas API.
type Envelope[T any] struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
	Data      struct {
		Value []T `json:"value"`
	} `json:"data"`
}

// Filter carries the list query parameters shared by the list endpoints.
// NumFilter selects the column (0 = all) and TextFilter the search text.
type Filter struct {
	NumFilter  int
	TextFilter string
}

// Status is the envelope without its payload, used for write responses.
type Status struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
}
