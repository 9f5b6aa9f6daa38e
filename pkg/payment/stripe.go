package payment

import (
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

// CheckoutSession is the provider-neutral view of a card checkout session.
type CheckoutSession struct {
	ID            string
	URL           string
	Paid          bool
	TransactionID string
}

type StripeService struct {
	secretKey   string
	frontendURL string
}

func NewStripeService(secretKey, frontendURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		secretKey:   secretKey,
		frontendURL: frontendURL,
	}
}

// CreateSession opens a card checkout for the cart total. The cart id rides
// along as metadata so confirmation can re-resolve the cart after a redirect
// or restart.
func (s *StripeService) CreateSession(amount float64, eventName string, cartID uint) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(int64(amount * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(eventName),
						Description: stripe.String(fmt.Sprintf("Event creation and notification for %s", eventName)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/payment/success?cart_id=%d&session_id={CHECKOUT_SESSION_ID}", s.frontendURL, cartID)),
		CancelURL:  stripe.String(s.frontendURL + "/payment/cancel"),
	}
	params.AddMetadata("cart_id", fmt.Sprintf("%d", cartID))

	sess, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// GetSession retrieves a session and reports whether it is paid. The
// transaction id is the payment intent when available, the session id
// otherwise.
func (s *StripeService) GetSession(sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("payment_intent")

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, err
	}

	out := &CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		Paid:          sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		TransactionID: sess.ID,
	}
	if sess.PaymentIntent != nil {
		out.TransactionID = sess.PaymentIntent.ID
	}
	return out, nil
}
