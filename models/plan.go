package models

import "fmt"

// CheckoutSelection identifies the subscription plan and price handed off to
// checkout for a given role.
type CheckoutSelection struct {
	PlanID  string `json:"planId"`
	PriceID string `json:"priceId"`
}

// PlanForRole maps a selectable role to its checkout plan and price
// identifiers. The switch is exhaustive over the self-service roles so that
// adding a role without a plan mapping fails loudly at submission, not
// silently at checkout.
func PlanForRole(role Role) (CheckoutSelection, error) {
	switch role {
	case RoleElectrician:
		return CheckoutSelection{
			PlanID:  "electrician-monthly",
			PriceID: "price_electrician_monthly",
		}, nil
	case RoleApprentice:
		return CheckoutSelection{
			PlanID:  "apprentice-monthly",
			PriceID: "price_apprentice_monthly",
		}, nil
	}
	return CheckoutSelection{}, fmt.Errorf("no checkout plan mapped for role %q", role)
}
