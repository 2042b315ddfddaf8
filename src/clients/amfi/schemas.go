package amfi

// ARNDetails is the advisor row returned by the AMFI lookup.
type ARNDetails struct {
	ARN   string `json:"amfi_arn_number"`
	Email string `json:"amfi_email"`
}
