// Package storagetest holds the behaviour every storage.Backend must share.
package storagetest

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/storage"
)

// BackendSuite runs the common backend contract. Embedding suites set Backend in SetupTest.
type BackendSuite struct {
	suite.Suite
	Backend storage.Backend
	Ctx     context.Context
}

func (s *BackendSuite) ctx() context.Context {
	if s.Ctx == nil {
		return context.Background()
	}
	return s.Ctx
}

func (s *BackendSuite) TestSaveAndLoad() {
	s.Require().NoError(s.Backend.Save(s.ctx(), "save", []byte(`{"version":3}`)))

	v, err := s.Backend.Load(s.ctx(), "save")
	s.Require().NoError(err)
	s.Equal(`{"version":3}`, string(v))
}

func (s *BackendSuite) TestSaveOverwrites() {
	s.Require().NoError(s.Backend.Save(s.ctx(), "save", []byte("one")))
	s.Require().NoError(s.Backend.Save(s.ctx(), "save", []byte("two")))

	v, err := s.Backend.Load(s.ctx(), "save")
	s.Require().NoError(err)
	s.Equal("two", string(v))
}

func (s *BackendSuite) TestLoadNotFound() {
	_, err := s.Backend.Load(s.ctx(), "missing")
	s.ErrorIs(err, model.ErrKeyNotFound)
}

func (s *BackendSuite) TestLoadOrDefault() {
	v, err := storage.LoadOrDefault(s.ctx(), s.Backend, "missing", []byte("fallback"))
	s.Require().NoError(err)
	s.Equal("fallback", string(v))
}

func (s *BackendSuite) TestHasKey() {
	ok, err := s.Backend.HasKey(s.ctx(), "save")
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.Backend.Save(s.ctx(), "save", []byte("x")))

	ok, err = s.Backend.HasKey(s.ctx(), "save")
	s.Require().NoError(err)
	s.True(ok)
}

func (s *BackendSuite) TestDelete() {
	s.Require().NoError(s.Backend.Save(s.ctx(), "save", []byte("x")))
	s.Require().NoError(s.Backend.Delete(s.ctx(), "save"))

	_, err := s.Backend.Load(s.ctx(), "save")
	s.ErrorIs(err, model.ErrKeyNotFound)
}

func (s *BackendSuite) TestDeleteMissingIsNoError() {
	s.NoError(s.Backend.Delete(s.ctx(), "missing"))
}

func (s *BackendSuite) TestDeleteAll() {
	s.Require().NoError(s.Backend.Save(s.ctx(), "a", []byte("1")))
	s.Require().NoError(s.Backend.Save(s.ctx(), "b", []byte("2")))
	s.Require().NoError(s.Backend.DeleteAll(s.ctx()))

	for _, k := range []string{"a", "b"} {
		ok, err := s.Backend.HasKey(s.ctx(), k)
		s.Require().NoError(err)
		s.False(ok, k)
	}
}

func (s *BackendSuite) TestEmptyKeyRejected() {
	s.ErrorIs(s.Backend.Save(s.ctx(), "", []byte("x")), model.ErrInvalidKey)
	_, err := s.Backend.Load(s.ctx(), "")
	s.ErrorIs(err, model.ErrInvalidKey)
}
