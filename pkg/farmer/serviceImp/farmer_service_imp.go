package serviceImp

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"landlink/entities"
	"landlink/pkg/farmer/service"
	landrepo "landlink/pkg/land/repository"
	profilerepo "landlink/pkg/profile/repository"
	"landlink/pkg/session"
)

const opSaveProfile = "farmer.save_profile"

type farmerSvc struct {
	profiles profilerepo.ProfileRepository
	lands    landrepo.LandRepository
	log      *zap.Logger
}

func NewFarmerService(p profilerepo.ProfileRepository, l landrepo.LandRepository, log *zap.Logger) service.FarmerService {
	return &farmerSvc{profiles: p, lands: l, log: log}
}

func (s *farmerSvc) Dashboard(ctx context.Context, sess *session.Session) (*service.Dashboard, error) {
	var (
		p     *entities.Profile
		fp    *entities.FarmerProfile
		lands []entities.Land
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		p, err = s.profiles.FindProfile(gctx, sess.UserID())
		return err
	})
	g.Go(func() (err error) {
		fp, err = s.profiles.FindFarmerProfile(gctx, sess.UserID())
		return err
	})
	g.Go(func() (err error) {
		lands, err = s.lands.ListAvailable(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load farmer dashboard: %w", err)
	}
	return &service.Dashboard{
		Profile:       p,
		FarmerProfile: fp,
		Form:          service.FormOf(p, fp),
		Lands:         lands,
		Editing:       sess.Editing(service.View),
	}, nil
}

func (s *farmerSvc) AvailableLands(ctx context.Context) ([]entities.Land, error) {
	return s.lands.ListAvailable(ctx)
}

func (s *farmerSvc) ToggleEditing(sess *session.Session) bool {
	return sess.ToggleEditing(service.View)
}

func (s *farmerSvc) SaveProfile(ctx context.Context, sess *session.Session, form service.ProfileForm) (*service.Dashboard, error) {
	release, err := sess.Begin(opSaveProfile)
	if err != nil {
		return nil, err
	}
	defer release()

	uid := sess.UserID()
	fp := &entities.FarmerProfile{
		UserID:          uid,
		FarmSize:        service.ParseFarmSize(form.FarmSize),
		CropTypes:       service.ParseCropTypes(form.CropTypes),
		ExperienceYears: service.ParseExperience(form.ExperienceYears),
	}

	// The two writes are independent; each records its own outcome.
	var saveErr service.SaveError
	var g errgroup.Group
	g.Go(func() error {
		saveErr.Profile = s.profiles.UpdateContact(ctx, uid, form.Phone, form.Address)
		return nil
	})
	g.Go(func() error {
		saveErr.FarmerProfile = s.profiles.SaveFarmerProfile(ctx, fp)
		return nil
	})
	_ = g.Wait()

	if err := sess.Refresh(ctx); err != nil {
		s.log.Warn("refresh after farmer save", zap.String("uid", uid), zap.Error(err))
	}
	dash, dashErr := s.Dashboard(ctx, sess)

	if saveErr.Profile != nil || saveErr.FarmerProfile != nil {
		s.log.Error("farmer profile save", zap.String("uid", uid), zap.Strings("failed", saveErr.Failed()))
		return dash, &saveErr
	}
	s.log.Info("farmer profile saved", zap.String("uid", uid), zap.Strings("crop_types", fp.CropTypes))
	sess.SetEditing(service.View, false)
	if dashErr != nil {
		return nil, dashErr
	}
	dash.Editing = false
	return dash, nil
}
