package services

import (
	"context"
	"sort"

	"github.com/DavidWhitehead8808/Purley-Padel-App/models"
	"github.com/DavidWhitehead8808/Purley-Padel-App/repositories"
)

// In-memory repository fakes. Reads hand out copies, like a real scan would,
// so a service mutating a returned model must write it back explicitly.

type fakeDivisionRepo struct {
	divisions map[int]*models.Division
	nextID    int
}

func newFakeDivisionRepo() *fakeDivisionRepo {
	return &fakeDivisionRepo{divisions: make(map[int]*models.Division)}
}

func (r *fakeDivisionRepo) add(d *models.Division) *models.Division {
	if d.ID == 0 {
		r.nextID++
		d.ID = r.nextID
	} else if d.ID > r.nextID {
		r.nextID = d.ID
	}
	r.divisions[d.ID] = d
	return d
}

func (r *fakeDivisionRepo) Create(ctx context.Context, exec repositories.SQLExecutor, division *models.Division) error {
	copied := *division
	r.add(&copied)
	division.ID = copied.ID
	return nil
}

func (r *fakeDivisionRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Division, error) {
	d, ok := r.divisions[id]
	if !ok {
		return nil, repositories.ErrDivisionNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDivisionRepo) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Division, error) {
	return r.GetByID(ctx, exec, id)
}

func (r *fakeDivisionRepo) List(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Division, error) {
	out := make([]*models.Division, 0, len(r.divisions))
	for _, d := range r.divisions {
		copied := *d
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeDivisionRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	if _, ok := r.divisions[id]; !ok {
		return repositories.ErrDivisionNotFound
	}
	delete(r.divisions, id)
	return nil
}

type fakePlayerRepo struct {
	players map[int]*models.Player
	nextID  int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]*models.Player)}
}

func (r *fakePlayerRepo) add(p *models.Player) *models.Player {
	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	} else if p.ID > r.nextID {
		r.nextID = p.ID
	}
	r.players[p.ID] = p
	return p
}

func (r *fakePlayerRepo) Create(ctx context.Context, exec repositories.SQLExecutor, player *models.Player) error {
	copied := *player
	r.add(&copied)
	player.ID = copied.ID
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePlayerRepo) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error) {
	return r.GetByID(ctx, exec, id)
}

func (r *fakePlayerRepo) ListByDivision(ctx context.Context, exec repositories.SQLExecutor, divisionID int, standingsOrder bool) ([]*models.Player, error) {
	out := make([]*models.Player, 0)
	for _, p := range r.players {
		if p.DivisionID != divisionID {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	if standingsOrder {
		sort.Slice(out, func(i, j int) bool {
			if out[i].Points != out[j].Points {
				return out[i].Points > out[j].Points
			}
			if out[i].SetDifference() != out[j].SetDifference() {
				return out[i].SetDifference() > out[j].SetDifference()
			}
			return out[i].Name < out[j].Name
		})
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}
	return out, nil
}

func (r *fakePlayerRepo) UpdateStats(ctx context.Context, exec repositories.SQLExecutor, player *models.Player) error {
	stored, ok := r.players[player.ID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	stored.PlayerStats = player.PlayerStats
	return nil
}

func (r *fakePlayerRepo) ResetStatsByDivision(ctx context.Context, exec repositories.SQLExecutor, divisionID int) error {
	for _, p := range r.players {
		if p.DivisionID == divisionID {
			p.PlayerStats = models.PlayerStats{}
		}
	}
	return nil
}

type fakeFixtureRepo struct {
	fixtures map[int]*models.Fixture
	nextID   int
}

func newFakeFixtureRepo() *fakeFixtureRepo {
	return &fakeFixtureRepo{fixtures: make(map[int]*models.Fixture)}
}

func (r *fakeFixtureRepo) add(f *models.Fixture) *models.Fixture {
	if f.ID == 0 {
		r.nextID++
		f.ID = r.nextID
	} else if f.ID > r.nextID {
		r.nextID = f.ID
	}
	r.fixtures[f.ID] = f
	return f
}

func copyFixture(f *models.Fixture) *models.Fixture {
	copied := *f
	if f.SetScores != nil {
		copied.SetScores = append([]models.SetScore(nil), f.SetScores...)
	}
	if f.Player1Sets != nil {
		v := *f.Player1Sets
		copied.Player1Sets = &v
	}
	if f.Player2Sets != nil {
		v := *f.Player2Sets
		copied.Player2Sets = &v
	}
	if f.WinnerID != nil {
		v := *f.WinnerID
		copied.WinnerID = &v
	}
	if f.MatchDate != nil {
		v := *f.MatchDate
		copied.MatchDate = &v
	}
	return &copied
}

func (r *fakeFixtureRepo) Create(ctx context.Context, exec repositories.SQLExecutor, fixture *models.Fixture) error {
	copied := copyFixture(fixture)
	r.add(copied)
	fixture.ID = copied.ID
	return nil
}

func (r *fakeFixtureRepo) BatchCreate(ctx context.Context, exec repositories.SQLExecutor, fixtures []*models.Fixture) error {
	for _, f := range fixtures {
		if err := r.Create(ctx, exec, f); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeFixtureRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Fixture, error) {
	f, ok := r.fixtures[id]
	if !ok {
		return nil, repositories.ErrFixtureNotFound
	}
	return copyFixture(f), nil
}

func (r *fakeFixtureRepo) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Fixture, error) {
	return r.GetByID(ctx, exec, id)
}

func (r *fakeFixtureRepo) ListByDivision(ctx context.Context, exec repositories.SQLExecutor, divisionID int) ([]*models.Fixture, error) {
	out := make([]*models.Fixture, 0)
	for _, f := range r.fixtures {
		if f.DivisionID == divisionID {
			out = append(out, copyFixture(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFixtureRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, fixture *models.Fixture) error {
	if _, ok := r.fixtures[fixture.ID]; !ok {
		return repositories.ErrFixtureNotFound
	}
	r.fixtures[fixture.ID] = copyFixture(fixture)
	return nil
}

func (r *fakeFixtureRepo) DeleteByDivision(ctx context.Context, exec repositories.SQLExecutor, divisionID int) error {
	for id, f := range r.fixtures {
		if f.DivisionID == divisionID {
			delete(r.fixtures, id)
		}
	}
	return nil
}
