package lead

import (
	"sort"
	"strings"
	"testing"

	"github.com/alyssonlcss/api-leads/internal/apperror"
	"github.com/alyssonlcss/api-leads/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs em memória ─────────────────────────────────────────────────────────

type stubResolvedor struct {
	distribuidores map[uint]uint // usuarioID → distribuidorID
}

func (s *stubResolvedor) ResolverDistribuidor(_ *gorm.DB, usuarioID uint) (uint, error) {
	d, ok := s.distribuidores[usuarioID]
	if !ok {
		return 0, apperror.Forbidden("usuário não possui distribuidor associado")
	}
	return d, nil
}

type stubLeadRepo struct {
	leads       map[uint]*models.Lead
	props       map[uint]*models.PropriedadeRural
	proximoLead uint
	proximaProp uint
}

func newStubLeadRepo() *stubLeadRepo {
	return &stubLeadRepo{
		leads: map[uint]*models.Lead{},
		props: map[uint]*models.PropriedadeRural{},
	}
}

func (r *stubLeadRepo) propsDoLead(leadID uint) []models.PropriedadeRural {
	var out []models.PropriedadeRural
	for _, p := range r.props {
		if p.LeadID == leadID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func contem(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Listar emula o predicado SQL: seleciona o lead se ALGUMA propriedade casa
// com o modo, mas devolve a lista completa de propriedades — como o join com
// preload faz no banco.
func (r *stubLeadRepo) Listar(_ *gorm.DB, f Filtro) ([]models.Lead, error) {
	var out []models.Lead
	for _, l := range r.leads {
		props := r.propsDoLead(l.ID)
		casa := false
		for _, p := range props {
			if f.DistribuidorID != nil {
				if p.DistribuidorID != nil && *p.DistribuidorID == *f.DistribuidorID {
					casa = true
				}
			} else if p.DistribuidorID == nil {
				casa = true
			}
		}
		if !casa {
			continue
		}
		if f.Nome != "" && !contem(l.Nome, f.Nome) {
			continue
		}
		if f.CPF != "" && l.CPF != f.CPF {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.Comentario != "" && (l.Comentario == nil || !contem(*l.Comentario, f.Comentario)) {
			continue
		}
		if f.Email != "" && (l.Email == nil || !contem(*l.Email, f.Email)) {
			continue
		}
		if f.Telefone != "" && (l.Telefone == nil || !strings.Contains(*l.Telefone, f.Telefone)) {
			continue
		}
		copia := *l
		copia.PropriedadesRurais = props
		out = append(out, copia)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubLeadRepo) BuscarVisivel(_ *gorm.DB, id, distribuidorID uint) (*models.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	props := r.propsDoLead(id)

	visivel := l.DistribuidorID == nil ||
		*l.DistribuidorID == distribuidorID
	if !visivel {
		for _, p := range props {
			if p.DistribuidorID == nil {
				visivel = true
				break
			}
		}
	}
	if !visivel {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *l
	copia.PropriedadesRurais = props
	return &copia, nil
}

func (r *stubLeadRepo) BuscarPorID(_ *gorm.DB, id uint) (*models.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *l
	return &copia, nil
}

func (r *stubLeadRepo) BuscarComPropriedades(db *gorm.DB, id uint) (*models.Lead, error) {
	l, err := r.BuscarPorID(db, id)
	if err != nil {
		return nil, err
	}
	l.PropriedadesRurais = r.propsDoLead(id)
	return l, nil
}

func (r *stubLeadRepo) BuscarPorCPF(_ *gorm.DB, cpf string) (*models.Lead, error) {
	for _, l := range r.leads {
		if l.CPF == cpf {
			copia := *l
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLeadRepo) BuscarPorEmail(_ *gorm.DB, email string) (*models.Lead, error) {
	for _, l := range r.leads {
		if l.Email != nil && *l.Email == email {
			copia := *l
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLeadRepo) BuscarPorTelefone(_ *gorm.DB, telefone string) (*models.Lead, error) {
	for _, l := range r.leads {
		if l.Telefone != nil && *l.Telefone == telefone {
			copia := *l
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLeadRepo) Salvar(_ *gorm.DB, l *models.Lead) error {
	for _, existente := range r.leads {
		if existente.CPF == l.CPF {
			return gorm.ErrDuplicatedKey
		}
	}
	r.proximoLead++
	l.ID = r.proximoLead
	copia := *l
	r.leads[l.ID] = &copia
	return nil
}

func (r *stubLeadRepo) Atualizar(_ *gorm.DB, l *models.Lead) error {
	copia := *l
	copia.PropriedadesRurais = nil
	r.leads[l.ID] = &copia
	return nil
}

func (r *stubLeadRepo) PropriedadesDoLead(_ *gorm.DB, leadID uint) ([]models.PropriedadeRural, error) {
	return r.propsDoLead(leadID), nil
}

func (r *stubLeadRepo) SalvarPropriedade(_ *gorm.DB, p *models.PropriedadeRural) error {
	r.proximaProp++
	p.ID = r.proximaProp
	copia := *p
	r.props[p.ID] = &copia
	return nil
}

func (r *stubLeadRepo) AtualizarPropriedade(_ *gorm.DB, id uint, campos map[string]interface{}) error {
	p, ok := r.props[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := campos["nome"]; ok {
		p.Nome = v.(string)
	}
	if v, ok := campos["cultura"]; ok {
		p.Cultura = v.(string)
	}
	if v, ok := campos["hectares"]; ok {
		p.Hectares = v.(float64)
	}
	if v, ok := campos["uf"]; ok {
		p.UF = v.(string)
	}
	if v, ok := campos["cidade"]; ok {
		p.Cidade = v.(string)
	}
	if v, ok := campos["latitude"]; ok {
		p.Latitude = v.(float64)
	}
	if v, ok := campos["longitude"]; ok {
		p.Longitude = v.(float64)
	}
	return nil
}

func (r *stubLeadRepo) DeletarPropriedadesDoLead(_ *gorm.DB, leadID uint) error {
	for id, p := range r.props {
		if p.LeadID == leadID {
			delete(r.props, id)
		}
	}
	return nil
}

func (r *stubLeadRepo) Deletar(_ *gorm.DB, id uint) error {
	delete(r.leads, id)
	return nil
}

func (r *stubLeadRepo) EmTransacao(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return fn(db)
}

// ── Helpers de cenário ───────────────────────────────────────────────────────

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }

func novoServiceDeTeste() (*Service, *stubLeadRepo) {
	repo := newStubLeadRepo()
	svc := &Service{
		Repo: repo,
		Usuarios: &stubResolvedor{distribuidores: map[uint]uint{
			1: 10, // usuário 1 → distribuidor 10
			2: 20,
		}},
	}
	return svc, repo
}

func (r *stubLeadRepo) seedLead(l models.Lead, props ...models.PropriedadeRural) uint {
	r.proximoLead++
	l.ID = r.proximoLead
	r.leads[l.ID] = &l
	for _, p := range props {
		r.proximaProp++
		p.ID = r.proximaProp
		p.LeadID = l.ID
		copia := p
		r.props[p.ID] = &copia
	}
	return l.ID
}

// ── Testes ───────────────────────────────────────────────────────────────────

func TestFindAllModoNaoAtribuido(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	idA := repo.seedLead(models.Lead{Nome: "Lead A", CPF: "11144477735", Status: models.StatusNovo},
		models.PropriedadeRural{Cultura: "soja", UF: "MT", Cidade: "Sorriso"})
	repo.seedLead(models.Lead{Nome: "Lead B", CPF: "52998224725", Status: models.StatusNovo},
		models.PropriedadeRural{Cultura: "milho", UF: "GO", Cidade: "Rio Verde", DistribuidorID: uintPtr(10)})

	views, err := svc.FindAll(nil, 1, Filtro{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, idA, views[0].ID)
	for _, p := range views[0].PropriedadesRurais {
		assert.Nil(t, p.DistribuidorID)
	}
}

func TestFindAllModoAtribuido(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	repo.seedLead(models.Lead{Nome: "Lead A", CPF: "11144477735", Status: models.StatusNovo},
		models.PropriedadeRural{Cultura: "soja", UF: "MT", Cidade: "Sorriso"})
	// Lead B: atribuído ao distribuidor 7 no nível do lead, com propriedade
	// do distribuidor 10 — os dois sinais divergem de propósito.
	idB := repo.seedLead(models.Lead{Nome: "Lead B", CPF: "52998224725", Status: models.StatusNovo, DistribuidorID: uintPtr(7)},
		models.PropriedadeRural{Cultura: "milho", UF: "GO", Cidade: "Rio Verde", DistribuidorID: uintPtr(10)})

	views, err := svc.FindAll(nil, 1, Filtro{DistribuidorID: uintPtr(10)})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, idB, views[0].ID)
	// O distribuidorId da saída é o do PRÓPRIO lead, não o do filtro.
	require.NotNil(t, views[0].DistribuidorID)
	assert.Equal(t, uint(7), *views[0].DistribuidorID)
	for _, p := range views[0].PropriedadesRurais {
		require.NotNil(t, p.DistribuidorID)
		assert.Equal(t, uint(10), *p.DistribuidorID)
	}
}

func TestFindAllRefiltraPropriedadesDoLeadMisto(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	// Lead com uma propriedade solta e uma do distribuidor 10.
	id := repo.seedLead(models.Lead{Nome: "Misto", CPF: "11144477735", Status: models.StatusNovo},
		models.PropriedadeRural{Cultura: "soja", UF: "MT", Cidade: "Sorriso"},
		models.PropriedadeRural{Cultura: "milho", UF: "MT", Cidade: "Sinop", DistribuidorID: uintPtr(10)})

	naoAtribuidos, err := svc.FindAll(nil, 1, Filtro{})
	require.NoError(t, err)
	require.Len(t, naoAtribuidos, 1)
	require.Len(t, naoAtribuidos[0].PropriedadesRurais, 1)
	assert.Nil(t, naoAtribuidos[0].PropriedadesRurais[0].DistribuidorID)

	atribuidos, err := svc.FindAll(nil, 1, Filtro{DistribuidorID: uintPtr(10)})
	require.NoError(t, err)
	require.Len(t, atribuidos, 1)
	assert.Equal(t, id, atribuidos[0].ID)
	require.Len(t, atribuidos[0].PropriedadesRurais, 1)
	assert.Equal(t, uint(10), *atribuidos[0].PropriedadesRurais[0].DistribuidorID)
}

func TestFindAllDescartaLeadSemPropriedadeVisivel(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	// Só propriedade do distribuidor 5: invisível nos dois modos do usuário 1.
	repo.seedLead(models.Lead{Nome: "Oculto", CPF: "11144477735", Status: models.StatusNovo},
		models.PropriedadeRural{Cultura: "café", UF: "MG", Cidade: "Patrocínio", DistribuidorID: uintPtr(5)})

	views, err := svc.FindAll(nil, 1, Filtro{})
	require.NoError(t, err)
	assert.Empty(t, views)

	views, err = svc.FindAll(nil, 1, Filtro{DistribuidorID: uintPtr(10)})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestFindAllUsuarioSemDistribuidor(t *testing.T) {
	svc, _ := novoServiceDeTeste()

	_, err := svc.FindAll(nil, 99, Filtro{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestFindOneMaisLargoQueFindAll(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	repo.seedLead(models.Lead{Nome: "Solto", CPF: "11144477735", Status: models.StatusNovo},
		models.PropriedadeRural{Cultura: "soja", UF: "MT", Cidade: "Sorriso"})
	repo.seedLead(models.Lead{Nome: "Meu", CPF: "52998224725", Status: models.StatusNovo, DistribuidorID: uintPtr(10)},
		models.PropriedadeRural{Cultura: "milho", UF: "GO", Cidade: "Jataí", DistribuidorID: uintPtr(10)})

	// Todo lead alcançável pelo FindAll (em qualquer modo) precisa ser
	// alcançável pelo FindOne do mesmo chamador.
	for _, filtro := range []Filtro{{}, {DistribuidorID: uintPtr(10)}} {
		views, err := svc.FindAll(nil, 1, filtro)
		require.NoError(t, err)
		for _, v := range views {
			_, err := svc.FindOne(nil, v.ID, 1)
			assert.NoError(t, err, "lead %d visível no FindAll mas não no FindOne", v.ID)
		}
	}
}

func TestFindOnePredicadoDeTresVias(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	// Lead de outro distribuidor, sem propriedade solta: invisível.
	idFechado := repo.seedLead(models.Lead{Nome: "Fechado", CPF: "11144477735", Status: models.StatusNovo, DistribuidorID: uintPtr(7)},
		models.PropriedadeRural{Cultura: "soja", UF: "MT", Cidade: "Sorriso", DistribuidorID: uintPtr(7)})
	// Lead de outro distribuidor, mas com uma propriedade solta: visível.
	idAberto := repo.seedLead(models.Lead{Nome: "Aberto", CPF: "52998224725", Status: models.StatusNovo, DistribuidorID: uintPtr(7)},
		models.PropriedadeRural{Cultura: "milho", UF: "GO", Cidade: "Jataí"})

	_, err := svc.FindOne(nil, idFechado, 1)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	v, err := svc.FindOne(nil, idAberto, 1)
	require.NoError(t, err)
	require.NotNil(t, v.DistribuidorID)
	assert.Equal(t, uint(7), *v.DistribuidorID)
}

func TestFindOneViaPropriedadeSoltaNaoVazaAsAtribuidas(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	// Lead do distribuidor 7, visível ao usuário 1 só pela propriedade solta.
	id := repo.seedLead(models.Lead{Nome: "Misto", CPF: "11144477735", Status: models.StatusNovo, DistribuidorID: uintPtr(7)},
		models.PropriedadeRural{Cultura: "soja", UF: "MT", Cidade: "Sorriso"},
		models.PropriedadeRural{Cultura: "milho", UF: "GO", Cidade: "Jataí", DistribuidorID: uintPtr(7)})

	v, err := svc.FindOne(nil, id, 1)
	require.NoError(t, err)
	require.Len(t, v.PropriedadesRurais, 1)
	assert.Nil(t, v.PropriedadesRurais[0].DistribuidorID)
	assert.Equal(t, "soja", v.PropriedadesRurais[0].Cultura)

	// Para o próprio distribuidor 7 a saída continua completa.
	svcDono := &Service{Repo: repo, Usuarios: &stubResolvedor{distribuidores: map[uint]uint{3: 7}}}
	v, err = svcDono.FindOne(nil, id, 3)
	require.NoError(t, err)
	assert.Len(t, v.PropriedadesRurais, 2)
}

func TestCreateComPropriedadeInicial(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	criado, err := svc.Create(nil, CreateLeadRequest{
		Nome: "João da Silva",
		CPF:  "111.444.777-35",
		Propriedade: PropriedadePayload{
			Cultura:  "soja",
			Hectares: 120.5,
			UF:       "mt",
			Cidade:   "Sorriso",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "11144477735", criado.CPF)
	assert.Equal(t, models.StatusNovo, criado.Status)
	require.Len(t, criado.PropriedadesRurais, 1)
	assert.Equal(t, criado.ID, criado.PropriedadesRurais[0].LeadID)
	assert.Equal(t, "MT", criado.PropriedadesRurais[0].UF)
	assert.Len(t, repo.props, 1)
}

func TestCreateCPFDuplicado(t *testing.T) {
	svc, _ := novoServiceDeTeste()

	prop := PropriedadePayload{Cultura: "soja", Hectares: 10, UF: "MT", Cidade: "Sorriso"}
	_, err := svc.Create(nil, CreateLeadRequest{Nome: "Primeiro", CPF: "11144477735", Propriedade: prop})
	require.NoError(t, err)

	// Mesmo CPF com máscara diferente: normaliza e conflita.
	_, err = svc.Create(nil, CreateLeadRequest{Nome: "Segundo", CPF: "111.444.777-35", Propriedade: prop})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestCreateCPFInvalido(t *testing.T) {
	svc, _ := novoServiceDeTeste()

	_, err := svc.Create(nil, CreateLeadRequest{
		Nome:        "Inválido",
		CPF:         "11144477734",
		Propriedade: PropriedadePayload{Cultura: "soja", Hectares: 10, UF: "MT", Cidade: "Sorriso"},
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
}

func TestCreateEmailDuplicado(t *testing.T) {
	svc, _ := novoServiceDeTeste()

	prop := PropriedadePayload{Cultura: "soja", Hectares: 10, UF: "MT", Cidade: "Sorriso"}
	_, err := svc.Create(nil, CreateLeadRequest{Nome: "Primeiro", CPF: "11144477735", Email: strPtr("a@b.com"), Propriedade: prop})
	require.NoError(t, err)

	_, err = svc.Create(nil, CreateLeadRequest{Nome: "Segundo", CPF: "52998224725", Email: strPtr("a@b.com"), Propriedade: prop})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestUpdateReatribuiEDesatribuiDistribuidor(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	id := repo.seedLead(models.Lead{Nome: "Lead", CPF: "11144477735", Status: models.StatusNovo},
		models.PropriedadeRural{Cultura: "soja", UF: "MT", Cidade: "Sorriso"})

	v, err := svc.Update(nil, id, UpdateLeadRequest{
		DistribuidorID: OptionalUint{Set: true, Value: uintPtr(10)},
	}, 1)
	require.NoError(t, err)
	require.NotNil(t, v.DistribuidorID)
	assert.Equal(t, uint(10), *v.DistribuidorID)

	// distribuidorId: null desatribui.
	v, err = svc.Update(nil, id, UpdateLeadRequest{
		DistribuidorID: OptionalUint{Set: true, Value: nil},
	}, 1)
	require.NoError(t, err)
	assert.Nil(t, v.DistribuidorID)
}

func TestUpdatePatchDaPrimeiraPropriedade(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	id := repo.seedLead(models.Lead{Nome: "Lead", CPF: "11144477735", Status: models.StatusNovo},
		models.PropriedadeRural{Cultura: "soja", UF: "MT", Cidade: "Sorriso"},
		models.PropriedadeRural{Cultura: "milho", UF: "MT", Cidade: "Sinop"})

	_, err := svc.Update(nil, id, UpdateLeadRequest{
		Propriedade: &PropriedadePatch{Cultura: strPtr("algodão"), Hectares: float64Ptr(300)},
	}, 1)
	require.NoError(t, err)

	props := repo.propsDoLead(id)
	require.Len(t, props, 2)
	// Só a primeira (id crescente) muda; os campos ausentes ficam como estão.
	assert.Equal(t, "algodão", props[0].Cultura)
	assert.Equal(t, float64(300), props[0].Hectares)
	assert.Equal(t, "Sorriso", props[0].Cidade)
	assert.Equal(t, "milho", props[1].Cultura)
}

func TestUpdateEmailEmUsoPorOutroLead(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	repo.seedLead(models.Lead{Nome: "Dono", CPF: "11144477735", Email: strPtr("dono@x.com"), Status: models.StatusNovo},
		models.PropriedadeRural{Cultura: "soja", UF: "MT", Cidade: "Sorriso"})
	id := repo.seedLead(models.Lead{Nome: "Outro", CPF: "52998224725", Status: models.StatusNovo},
		models.PropriedadeRural{Cultura: "milho", UF: "GO", Cidade: "Jataí"})

	_, err := svc.Update(nil, id, UpdateLeadRequest{Email: strPtr("dono@x.com")}, 1)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestRemoveApagaPropriedadesAntes(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	id := repo.seedLead(models.Lead{Nome: "Lead", CPF: "11144477735", Status: models.StatusNovo},
		models.PropriedadeRural{Cultura: "soja", UF: "MT", Cidade: "Sorriso"},
		models.PropriedadeRural{Cultura: "milho", UF: "MT", Cidade: "Sinop"})

	require.NoError(t, svc.Remove(nil, id, 1))

	_, existe := repo.leads[id]
	assert.False(t, existe)
	for _, p := range repo.props {
		assert.NotEqual(t, id, p.LeadID)
	}
}

func TestRemoveLeadInvisivel(t *testing.T) {
	svc, repo := novoServiceDeTeste()

	id := repo.seedLead(models.Lead{Nome: "Alheio", CPF: "11144477735", Status: models.StatusNovo, DistribuidorID: uintPtr(7)},
		models.PropriedadeRural{Cultura: "soja", UF: "MT", Cidade: "Sorriso", DistribuidorID: uintPtr(7)})

	err := svc.Remove(nil, id, 1)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	_, existe := repo.leads[id]
	assert.True(t, existe)
}

func float64Ptr(v float64) *float64 { return &v }
