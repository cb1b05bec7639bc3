package common

const (
	AccountTypeIncoming = "incoming"
	AccountTypeCurrent  = "current"
	AccountTypeOutgoing = "outgoing"
	AccountTypeEscrow   = "escrow"
	AccountTypeFees     = "fees"

	EntryTypeDeposit       = "deposit"
	EntryTypeWithdrawal    = "withdrawal"
	EntryTypeSaleProceeds  = "sale_proceeds"
	EntryTypeRoyalty       = "royalty"
	EntryTypeMarketFee     = "market_fee"
	EntryTypeOfferEscrow   = "offer_escrow"
	EntryTypeOfferRelease  = "offer_release"
	EntryTypeOfferProceeds = "offer_proceeds"

	OfferStatePending   = "pending"
	OfferStateCancelled = "cancelled"
	OfferStateAccepted  = "accepted"

	PayoutStateInitialized = "initialized"
	PayoutStateSettled     = "settled"
	PayoutStateError       = "error"

	EventKindAssetMinted    = "asset_minted"
	EventKindAssetListed    = "asset_listed"
	EventKindAssetUnlisted  = "asset_unlisted"
	EventKindAssetSold      = "asset_sold"
	EventKindOfferMade      = "offer_made"
	EventKindOfferAccepted  = "offer_accepted"
	EventKindOfferCancelled = "offer_cancelled"
	EventKindFeeRateChanged = "fee_rate_changed"

	// Royalty and marketplace fee rates are basis points out of 1000,
	// so the default fee of 25 means 2.5%.
	RateDivisor    = 1000
	MaxRoyaltyRate = 1000
	MaxFeeRate     = 1000
	DefaultFeeRate = 25
)
