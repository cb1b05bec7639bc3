package responses

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is both the JSON error body and a Go error, so a failed
// precondition check deep inside a database transaction aborts the
// transaction and travels unchanged to the HTTP layer. Every kind has a
// distinct code so clients can render a precise message.
type ErrorResponse struct {
	IsError        bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string { return e.Message }

// From maps a service error onto the response to render. Precondition
// violations come through as ErrorResponse values; anything else is an
// infrastructure failure and is reported as a general server error.
func From(err error) ErrorResponse {
	var resp ErrorResponse
	if errors.As(err, &resp) {
		return resp
	}
	return GeneralServerError
}

var GeneralServerError = ErrorResponse{
	IsError:        true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	IsError:        true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	IsError:        true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var UnauthorizedError = ErrorResponse{
	IsError:        true,
	Code:           2,
	Message:        "unauthorized",
	HttpStatusCode: 401,
}

var AccountDeactivatedError = ErrorResponse{
	IsError:        true,
	Code:           1,
	Message:        "Account has been suspended. Please contact support for further assistance.",
	HttpStatusCode: 401,
}

var UnknownAssetError = ErrorResponse{
	IsError:        true,
	Code:           10,
	Message:        "unknown asset",
	HttpStatusCode: 404,
}

var NotOwnerError = ErrorResponse{
	IsError:        true,
	Code:           11,
	Message:        "you don't own this NFT",
	HttpStatusCode: 403,
}

var NotBidderError = ErrorResponse{
	IsError:        true,
	Code:           12,
	Message:        "offer belongs to another bidder",
	HttpStatusCode: 403,
}

var InvalidPriceError = ErrorResponse{
	IsError:        true,
	Code:           13,
	Message:        "price must be greater than 0",
	HttpStatusCode: 400,
}

var InvalidAmountError = ErrorResponse{
	IsError:        true,
	Code:           14,
	Message:        "amount must be greater than 0",
	HttpStatusCode: 400,
}

var InvalidRoyaltyError = ErrorResponse{
	IsError:        true,
	Code:           15,
	Message:        "royalty rate must be between 0 and 1000 basis points",
	HttpStatusCode: 400,
}

var InvalidFeeRateError = ErrorResponse{
	IsError:        true,
	Code:           16,
	Message:        "fee rate must be between 0 and 1000 basis points",
	HttpStatusCode: 400,
}

var NotListedError = ErrorResponse{
	IsError:        true,
	Code:           17,
	Message:        "NFT is not listed",
	HttpStatusCode: 400,
}

var UnknownOfferError = ErrorResponse{
	IsError:        true,
	Code:           18,
	Message:        "unknown or already resolved offer",
	HttpStatusCode: 404,
}

var InsufficientPaymentError = ErrorResponse{
	IsError:        true,
	Code:           19,
	Message:        "insufficient payment",
	HttpStatusCode: 400,
}

var NotEnoughBalanceError = ErrorResponse{
	IsError:        true,
	Code:           20,
	Message:        "not enough balance",
	HttpStatusCode: 400,
}

var PayoutExistsError = ErrorResponse{
	IsError:        true,
	Code:           21,
	Message:        "a payout with this id was already requested",
	HttpStatusCode: 409,
}

var LoginTakenError = ErrorResponse{
	IsError:        true,
	Code:           22,
	Message:        "login already exists",
	HttpStatusCode: 400,
}

var SplitExceedsPriceError = ErrorResponse{
	IsError:        true,
	Code:           23,
	Message:        "fee and royalty exceed the sale price",
	HttpStatusCode: 400,
}

// bad auth responses are expected noise, they should not show up in
// exception tracking
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	body, ok := he.Message.(echo.Map)
	if !ok {
		return true
	}
	return body["code"] != BadAuthError.Code
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}
