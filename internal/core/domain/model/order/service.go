package order

import (
	"fmt"

	"workshop/internal/pkg/errs"
)

// ServiceCategory is the kind of work a client asks for.
type ServiceCategory string

const (
	ServiceJacket    ServiceCategory = "jacket"
	ServiceLeather   ServiceCategory = "leather"
	ServiceCurtains  ServiceCategory = "curtains"
	ServiceCoat      ServiceCategory = "coat"
	ServiceFur       ServiceCategory = "fur"
	ServiceOuterwear ServiceCategory = "outerwear"
	ServicePants     ServiceCategory = "pants"
	ServiceDress     ServiceCategory = "dress"
)

var serviceTitles = map[ServiceCategory]string{
	ServiceJacket:    "Jacket repair",
	ServiceLeather:   "Leather goods",
	ServiceCurtains:  "Curtain tailoring",
	ServiceCoat:      "Coat repair",
	ServiceFur:       "Fur and sheepskin",
	ServiceOuterwear: "Raincoat and overcoat",
	ServicePants:     "Trousers and jeans",
	ServiceDress:     "Skirts and dresses",
}

// ServiceCategories lists the categories in menu order.
func ServiceCategories() []ServiceCategory {
	return []ServiceCategory{
		ServiceJacket, ServiceLeather, ServiceCurtains, ServiceCoat,
		ServiceFur, ServiceOuterwear, ServicePants, ServiceDress,
	}
}

func ParseServiceCategory(s string) (ServiceCategory, error) {
	c := ServiceCategory(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c ServiceCategory) Validate() error {
	if _, ok := serviceTitles[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("service", fmt.Errorf("%q is not a known service", string(c)))
	}
	return nil
}

// Title is the client-facing name of the category.
func (c ServiceCategory) Title() string {
	if title, ok := serviceTitles[c]; ok {
		return title
	}
	return string(c)
}
