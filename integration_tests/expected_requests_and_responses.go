package integration_tests

type ExpectedCreateUserResponseBody struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type ExpectedCreateUserRequestBody struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type ExpectedAuthRequestBody struct {
	Login        string `json:"login"`
	Password     string `json:"password"`
	RefreshToken string `json:"refresh_token"`
}

type ExpectedAuthResponseBody struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
}

type ExpectedMintAssetRequestBody struct {
	MetadataURI string `json:"metadata_uri"`
	RoyaltyRate int64  `json:"royalty_rate"`
}

type ExpectedListAssetRequestBody struct {
	Price int64 `json:"price"`
}

type ExpectedPurchaseRequestBody struct {
	Payment int64 `json:"payment"`
}

type ExpectedMakeOfferRequestBody struct {
	Amount int64 `json:"amount"`
}

type ExpectedDepositRequestBody struct {
	Amount int64 `json:"amount"`
}

type ExpectedRequestPayoutRequestBody struct {
	ExternalID  string `json:"external_id"`
	Destination string `json:"destination"`
	Amount      int64  `json:"amount"`
}

type ExpectedSetFeeRateRequestBody struct {
	Rate int64 `json:"rate"`
}
