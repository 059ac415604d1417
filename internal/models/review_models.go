package models

type Review struct {
	ID         int    `json:"id" yaml:"id" dynamodbav:"id"`
	Location   string `json:"location" yaml:"location" dynamodbav:"location"`
	ReviewText string `json:"reviewText" yaml:"review_text" dynamodbav:"review_text"`
}

// Texts returns the review bodies in store order.
func Texts(reviews []Review) []string {
	texts := make([]string, len(reviews))
	for i, r := range reviews {
		texts[i] = r.ReviewText
	}
	return texts
}
