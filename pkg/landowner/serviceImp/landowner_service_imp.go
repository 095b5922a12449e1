package serviceImp

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"landlink/entities"
	landrepo "landlink/pkg/land/repository"
	"landlink/pkg/landowner/service"
	profilerepo "landlink/pkg/profile/repository"
	"landlink/pkg/session"
)

const (
	opSaveProfile = "landowner.save_profile"
	opAddLand     = "landowner.add_land"
	opDeleteLand  = "landowner.delete_land"
)

type landownerSvc struct {
	profiles profilerepo.ProfileRepository
	lands    landrepo.LandRepository
	log      *zap.Logger
}

func NewLandownerService(p profilerepo.ProfileRepository, l landrepo.LandRepository, log *zap.Logger) service.LandownerService {
	return &landownerSvc{profiles: p, lands: l, log: log}
}

func (s *landownerSvc) Dashboard(ctx context.Context, sess *session.Session) (*service.Dashboard, error) {
	var (
		p     *entities.Profile
		lands []entities.Land
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		p, err = s.profiles.FindProfile(gctx, sess.UserID())
		return err
	})
	g.Go(func() (err error) {
		lands, err = s.lands.ListByOwner(gctx, sess.UserID())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load landowner dashboard: %w", err)
	}
	d := &service.Dashboard{Profile: p, Lands: lands, Editing: sess.Editing(service.View)}
	if p != nil {
		d.Form = service.ContactForm{Phone: p.Phone, Address: p.Address}
	}
	return d, nil
}

func (s *landownerSvc) ToggleEditing(sess *session.Session) bool {
	return sess.ToggleEditing(service.View)
}

func (s *landownerSvc) SaveProfile(ctx context.Context, sess *session.Session, form service.ContactForm) (*service.Dashboard, error) {
	release, err := sess.Begin(opSaveProfile)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.profiles.UpdateContact(ctx, sess.UserID(), form.Phone, form.Address); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if err := sess.Refresh(ctx); err != nil {
		s.log.Warn("refresh after landowner save", zap.String("uid", sess.UserID()), zap.Error(err))
	}
	sess.SetEditing(service.View, false)
	return s.Dashboard(ctx, sess)
}

func (s *landownerSvc) ListLands(ctx context.Context, sess *session.Session) ([]entities.Land, error) {
	return s.lands.ListByOwner(ctx, sess.UserID())
}

func (s *landownerSvc) AddLand(ctx context.Context, sess *session.Session, form service.LandForm) ([]entities.Land, error) {
	l, err := service.ParseLandForm(form, sess.UserID())
	if err != nil {
		return nil, err
	}
	release, err := sess.Begin(opAddLand)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.lands.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("insert land: %w", err)
	}
	s.log.Info("land listed", zap.String("uid", sess.UserID()), zap.String("land_id", l.ID), zap.String("title", l.Title))
	return s.lands.ListByOwner(ctx, sess.UserID())
}

func (s *landownerSvc) DeleteLand(ctx context.Context, sess *session.Session, id string, confirmed bool) ([]entities.Land, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, service.ErrInvalidID
	}
	if !confirmed {
		return nil, service.ErrConfirmationRequired
	}
	release, err := sess.Begin(opDeleteLand)
	if err != nil {
		return nil, err
	}
	defer release()

	ok, err := s.lands.DeleteOwned(ctx, id, sess.UserID())
	if err != nil {
		return nil, fmt.Errorf("delete land: %w", err)
	}
	if !ok {
		return nil, service.ErrNotFound
	}
	s.log.Info("land deleted", zap.String("uid", sess.UserID()), zap.String("land_id", id))
	return s.lands.ListByOwner(ctx, sess.UserID())
}

func (s *landownerSvc) ExportLands(ctx context.Context, sess *session.Session, w io.Writer) error {
	lands, err := s.lands.ListByOwner(ctx, sess.UserID())
	if err != nil {
		return err
	}
	return WriteListings(w, lands)
}
