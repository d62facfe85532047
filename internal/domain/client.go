package domain

// Client represents a customer of the business
type Client struct {
	ID    int64
	Name  string
	Phone string
	Email *string
}

// ClientUpdate частичное обновление клиента
type ClientUpdate struct {
	Name  *string
	Phone *string
	Email *string
}

// ListParams параметры поиска для справочников
type ListParams struct {
	Search string
	Limit  int
}
