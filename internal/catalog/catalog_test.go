package catalog

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/testutil"
)

type CatalogSuite struct {
	suite.Suite
	catalog *Catalog
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) SetupTest() {
	s.catalog = New([]model.Item{
		{ID: "sword", Type: model.ItemTypeEquipment, Category: "weapons", SoftPrice: 80},
		{ID: "potion", Type: model.ItemTypeConsumable, Category: "boosts", Stackable: true},
		{ID: "sword", Type: model.ItemTypeCosmetic, Category: "dupes"},
		{ID: "", Category: "weapons"},
		{ID: "axe", Type: model.ItemTypeEquipment, Category: "weapons"},
	}, testutil.NopLogger())
}

func (s *CatalogSuite) TestGet() {
	sword, ok := s.catalog.Get("sword")
	s.True(ok)
	s.Equal(80, sword.SoftPrice)
	s.Equal(model.ItemTypeEquipment, sword.Type, "first definition wins")

	_, ok = s.catalog.Get("bow")
	s.False(ok)
}

func (s *CatalogSuite) TestContains() {
	s.True(s.catalog.Contains("potion"))
	s.False(s.catalog.Contains(""))
}

func (s *CatalogSuite) TestAllKeepsOrderAndCopies() {
	all := s.catalog.All()
	s.Require().Len(all, 3)
	s.Equal([]string{"sword", "potion", "axe"}, []string{all[0].ID, all[1].ID, all[2].ID})

	all[0].SoftPrice = 1
	sword, _ := s.catalog.Get("sword")
	s.Equal(80, sword.SoftPrice)
}

func (s *CatalogSuite) TestGetByCategory() {
	weapons := s.catalog.GetByCategory("weapons")
	s.Len(weapons, 2)
	s.Empty(s.catalog.GetByCategory("dupes"))
}

func (s *CatalogSuite) TestGetByType() {
	s.Len(s.catalog.GetByType(model.ItemTypeEquipment), 2)
	s.Len(s.catalog.GetByType(model.ItemTypeConsumable), 1)
	s.NotNil(s.catalog.GetByType(model.ItemTypeCurrency))
}
