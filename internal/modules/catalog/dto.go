package catalog

type PackageInput struct {
	Key         string  `json:"key" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
}

type AddonInput struct {
	Key         string  `json:"key" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
	MaxQuantity int     `json:"max_quantity" binding:"required,gte=1"`
}

type StudioRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Equipment   []string       `json:"equipment"`
	Images      []string       `json:"images"`
	Address     string         `json:"address" binding:"required"`
	City        string         `json:"city" binding:"required"`
	State       string         `json:"state"`
	PostalCode  string         `json:"postal_code"`
	OpenHour    int            `json:"open_hour" binding:"gte=0,lte=23"`
	CloseHour   int            `json:"close_hour" binding:"gte=1,lte=24"`
	Packages    []PackageInput `json:"packages" binding:"required,min=1"`
	Addons      []AddonInput   `json:"addons"`
}

type HourInput struct {
	Hour        int  `json:"hour" validate:"gte=0,lte=23"`
	IsAvailable bool `json:"is_available"`
}

type DayInput struct {
	Date  string      `json:"date" binding:"required" validate:"required"`
	Slots []HourInput `json:"slots" binding:"required,min=1" validate:"required,min=1,dive"`
}

type SetAvailabilityRequest struct {
	Days []DayInput `json:"days" binding:"required" validate:"required,dive"`
}

// DaySlots is one entry of the available-slot projection.
type DaySlots struct {
	Date  string `json:"date"`
	Hours []int  `json:"hours"`
}
