package models

// DeepgramListenResponse is used to parse the transcript from Deepgram's
// pre-recorded /v1/listen API.
type DeepgramListenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}
