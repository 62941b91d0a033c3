package category

import (
	"crypto/sha256"
	"time"

	"Paydue/internal/domain/obligation"

	"github.com/oklog/ulid/v2"
)

type Category struct {
	Id        ulid.ULID       `json:"id"`
	Name      string          `json:"name"`
	Icon      string          `json:"icon"`
	Kind      obligation.Kind `json:"kind"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type DefaultCategoryDefinition struct {
	Name string
	Icon string
	Kind obligation.Kind
}

var DefaultCategories = []DefaultCategoryDefinition{
	{Name: "Moradia", Icon: "home", Kind: obligation.KindExpense},
	{Name: "Contas", Icon: "bills", Kind: obligation.KindExpense},
	{Name: "Alimentação", Icon: "food", Kind: obligation.KindExpense},
	{Name: "Transporte", Icon: "car", Kind: obligation.KindExpense},
	{Name: "Saúde", Icon: "health", Kind: obligation.KindExpense},
	{Name: "Educação", Icon: "education", Kind: obligation.KindExpense},
	{Name: "Compras", Icon: "shopping", Kind: obligation.KindExpense},
	{Name: "Salário", Icon: "salary", Kind: obligation.KindIncome},
	{Name: "Freelance", Icon: "freelance", Kind: obligation.KindIncome},
	{Name: "Empréstimos", Icon: "handshake", Kind: obligation.KindReceivable},
	{Name: "Outros", Icon: "other", Kind: obligation.KindExpense},
}

// DefaultCategoryList builds the default categories with ids that are stable
// across runs, so seeding twice never duplicates them.
func DefaultCategoryList(now time.Time) []*Category {
	categories := make([]*Category, 0, len(DefaultCategories))
	for _, def := range DefaultCategories {
		categories = append(categories, &Category{
			Id:        GenerateDeterministicID(def.Name),
			Name:      def.Name,
			Icon:      def.Icon,
			Kind:      def.Kind,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return categories
}

func GenerateDeterministicID(categoryName string) ulid.ULID {
	hash := sha256.Sum256([]byte("default_category:" + categoryName))

	timestamp := ulid.Timestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	entropy := [10]byte{}
	copy(entropy[:], hash[:10])

	reader := &deterministicReader{data: entropy[:]}
	return ulid.MustNew(timestamp, reader)
}

type deterministicReader struct {
	data []byte
	pos  int
}

func (r *deterministicReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if r.pos >= len(r.data) {
		r.pos = 0
	}

	n := copy(p, r.data[r.pos:])
	r.pos += n

	if r.pos >= len(r.data) {
		r.pos = 0
	}

	return n, nil
}
