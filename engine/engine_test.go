package engine

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/rushteam/recmap/core"
	"github.com/rushteam/recmap/mapping"
	"github.com/rushteam/recmap/sparse"
)

// fixedScorer 对已知用户返回固定分数矩阵，对冷启动返回
// 交互向量的 softmax 风格变换，保证分数确定且彼此可区分。
type fixedScorer struct {
	scores [][]float64
}

func (s *fixedScorer) ScoreUsers(_ context.Context, userIndices []int) ([][]float64, error) {
	out := make([][]float64, len(userIndices))
	for i, u := range userIndices {
		out[i] = append([]float64(nil), s.scores[u]...)
	}
	return out, nil
}

func (s *fixedScorer) ScoreColdStart(_ context.Context, profile *core.SparseVector) ([]float64, error) {
	dense := profile.ToDense()
	out := make([]float64, len(dense))
	var sum float64
	for j, v := range dense {
		out[j] = math.Exp(v + float64(j)/1000)
		sum += out[j]
	}
	for j := range out {
		out[j] /= sum
	}
	return out, nil
}

type fixture struct {
	engine  *Engine
	userIDs []string
	itemIDs []string
	dense   [][]float64
}

// newFixture 构造 numUsers × numItems 的随机 0/1 交互矩阵和随机分数。
func newFixture(t *testing.T, numUsers, numItems int) *fixture {
	t.Helper()
	rng := rand.New(rand.NewPCG(7, 11))

	dense := make([][]float64, numUsers)
	scores := make([][]float64, numUsers)
	for i := range dense {
		dense[i] = make([]float64, numItems)
		scores[i] = make([]float64, numItems)
		for j := range dense[i] {
			if rng.Float64() < 0.3 {
				dense[i][j] = 1
			}
			scores[i][j] = rng.Float64()
		}
	}

	interactions, err := sparse.FromDense(dense, sparse.Float64)
	if err != nil {
		t.Fatalf("FromDense: %v", err)
	}
	userIDs := make([]string, numUsers)
	for i := range userIDs {
		userIDs[i] = uuid.NewString()
	}
	itemIDs := make([]string, numItems)
	for j := range itemIDs {
		itemIDs[j] = uuid.NewString()
	}
	mapper, err := mapping.NewIDMapper(userIDs, itemIDs, interactions)
	if err != nil {
		t.Fatalf("NewIDMapper: %v", err)
	}
	eng, err := New(mapper, &fixedScorer{scores: scores}, interactions)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &fixture{engine: eng, userIDs: userIDs, itemIDs: itemIDs, dense: dense}
}

func (f *fixture) unseenItems(userIdx int) map[string]bool {
	out := make(map[string]bool)
	for j, v := range f.dense[userIdx] {
		if v == 0 {
			out[f.itemIDs[j]] = true
		}
	}
	return out
}

func TestNew_Validation(t *testing.T) {
	f := newFixture(t, 3, 4)

	if _, err := New(nil, nil, nil); !core.IsValidation(err) {
		t.Fatalf("nil deps: err = %v, want validation error", err)
	}

	// 形状不匹配的矩阵
	other, err := sparse.FromDense([][]float64{{1, 0}}, sparse.Float64)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(f.engine.Mapper(), &fixedScorer{}, other); !core.IsValidation(err) {
		t.Fatalf("shape mismatch: err = %v, want validation error", err)
	}
}

func TestRecommendForUser_ReturnsUnseenComplement(t *testing.T) {
	f := newFixture(t, 31, 42)
	ctx := context.Background()

	for userIdx, userID := range f.userIDs {
		items, err := f.engine.RecommendForUser(ctx, userID, 42)
		if err != nil {
			t.Fatalf("RecommendForUser(%d): %v", userIdx, err)
		}
		unseen := f.unseenItems(userIdx)
		if len(items) != len(unseen) {
			t.Fatalf("user %d: got %d items, want %d unseen", userIdx, len(items), len(unseen))
		}
		for _, it := range items {
			if !unseen[it.ID] {
				t.Fatalf("user %d: item %q was already interacted with", userIdx, it.ID)
			}
		}
	}
}

func TestRecommendForUser_Ordering(t *testing.T) {
	f := newFixture(t, 31, 42)
	ctx := context.Background()

	items, err := f.engine.RecommendForUser(ctx, f.userIDs[0], 42)
	if err != nil {
		t.Fatalf("RecommendForUser: %v", err)
	}
	if !sort.SliceIsSorted(items, func(a, b int) bool {
		return items[a].Score > items[b].Score
	}) {
		t.Fatal("items are not sorted by score descending")
	}
	for _, it := range items {
		lbl, ok := it.GetLabel("recall_source")
		if !ok || lbl.Value != "engine.known_user" {
			t.Fatalf("item %q: recall_source label = %+v", it.ID, lbl)
		}
	}
}

func TestRecommendForUser_TieBreakByIndex(t *testing.T) {
	// 三个候选同分，期望按内部索引升序输出
	dense := [][]float64{{0, 0, 0, 1}}
	interactions, err := sparse.FromDense(dense, sparse.Float64)
	if err != nil {
		t.Fatal(err)
	}
	itemIDs := []string{"a", "b", "c", "d"}
	mapper, err := mapping.NewIDMapper([]string{"u"}, itemIDs, interactions)
	if err != nil {
		t.Fatal(err)
	}
	eng, err := New(mapper, &fixedScorer{scores: [][]float64{{0.5, 0.5, 0.5, 0.9}}}, interactions)
	if err != nil {
		t.Fatal(err)
	}

	items, err := eng.RecommendForUser(context.Background(), "u", 10)
	if err != nil {
		t.Fatal(err)
	}
	got := make([]string, len(items))
	for i, it := range items {
		got[i] = it.ID
	}
	want := []string{"a", "b", "c"}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRecommendForUser_CutoffTruncates(t *testing.T) {
	f := newFixture(t, 31, 42)
	ctx := context.Background()

	full, err := f.engine.RecommendForUser(ctx, f.userIDs[5], 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(full) < 5 {
		t.Skipf("fixture user has only %d candidates", len(full))
	}

	top, err := f.engine.RecommendForUser(ctx, f.userIDs[5], 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 5 {
		t.Fatalf("got %d items, want 5", len(top))
	}
	// 截断必须是全量结果的前缀
	for i := range top {
		if top[i].ID != full[i].ID {
			t.Fatalf("truncated result diverges at %d: %q vs %q", i, top[i].ID, full[i].ID)
		}
	}
}

func TestRecommendForUser_Forbidden(t *testing.T) {
	f := newFixture(t, 31, 42)
	ctx := context.Background()

	full, err := f.engine.RecommendForUser(ctx, f.userIDs[0], 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(full) < 2 {
		t.Skip("fixture user has too few candidates")
	}
	banned := full[0].ID

	// 未知的禁用 ID 被宽松跳过，不报错
	items, err := f.engine.RecommendForUser(ctx, f.userIDs[0], 42,
		WithForbidden(banned, "no-such-item"))
	if err != nil {
		t.Fatalf("RecommendForUser: %v", err)
	}
	if len(items) != len(full)-1 {
		t.Fatalf("got %d items, want %d", len(items), len(full)-1)
	}
	for _, it := range items {
		if it.ID == banned {
			t.Fatalf("forbidden item %q in result", banned)
		}
	}
}

func TestRecommendForUser_Allowed(t *testing.T) {
	f := newFixture(t, 31, 42)
	ctx := context.Background()

	full, err := f.engine.RecommendForUser(ctx, f.userIDs[1], 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(full) < 3 {
		t.Skip("fixture user has too few candidates")
	}
	keep := []string{full[2].ID, full[0].ID}

	items, err := f.engine.RecommendForUser(ctx, f.userIDs[1], 42, WithAllowed(keep...))
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	// 白名单不改变排序：full[0] 仍排在 full[2] 之前
	if items[0].ID != full[0].ID || items[1].ID != full[2].ID {
		t.Fatalf("got [%q %q], want [%q %q]", items[0].ID, items[1].ID, full[0].ID, full[2].ID)
	}

	// 白名单与黑名单都命中同一物品时黑名单优先
	items, err = f.engine.RecommendForUser(ctx, f.userIDs[1], 42,
		WithAllowed(full[0].ID), WithForbidden(full[0].ID))
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("got %d items, want 0", len(items))
	}

	// 空白名单意味着没有候选
	items, err = f.engine.RecommendForUser(ctx, f.userIDs[1], 42, WithAllowed())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("empty allowlist: got %d items, want 0", len(items))
	}
}

func TestRecommendForUser_Errors(t *testing.T) {
	f := newFixture(t, 3, 4)
	ctx := context.Background()

	if _, err := f.engine.RecommendForUser(ctx, "stranger", 10); !core.IsUnknownUser(err) {
		t.Fatalf("unknown user: err = %v", err)
	}
	if _, err := f.engine.RecommendForUser(ctx, f.userIDs[0], 0); !core.IsValidation(err) {
		t.Fatalf("cutoff 0: err = %v", err)
	}
	if _, err := f.engine.RecommendForUser(ctx, f.userIDs[0], -3); !core.IsValidation(err) {
		t.Fatalf("negative cutoff: err = %v", err)
	}
}

func TestRecommendForNewUser(t *testing.T) {
	f := newFixture(t, 31, 42)
	ctx := context.Background()

	profile := []string{f.itemIDs[3], f.itemIDs[17], f.itemIDs[3]}
	items, err := f.engine.RecommendForNewUser(ctx, profile, 42)
	if err != nil {
		t.Fatalf("RecommendForNewUser: %v", err)
	}
	if len(items) != 40 {
		t.Fatalf("got %d items, want 40 (42 items minus 2 distinct interacted)", len(items))
	}
	for _, it := range items {
		if it.ID == f.itemIDs[3] || it.ID == f.itemIDs[17] {
			t.Fatalf("interacted item %q in cold-start result", it.ID)
		}
		lbl, ok := it.GetLabel("recall_source")
		if !ok || lbl.Value != "engine.cold_start" {
			t.Fatalf("item %q: recall_source label = %+v", it.ID, lbl)
		}
	}

	// 同一画像重复调用结果逐位一致
	again, err := f.engine.RecommendForNewUser(ctx, profile, 42)
	if err != nil {
		t.Fatal(err)
	}
	for i := range items {
		if items[i].ID != again[i].ID || items[i].Score != again[i].Score {
			t.Fatalf("cold-start result not deterministic at %d", i)
		}
	}
}

func TestRecommendForNewUser_NoProfile(t *testing.T) {
	f := newFixture(t, 3, 5)

	items, err := f.engine.RecommendForNewUser(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("RecommendForNewUser: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5 (nothing excluded)", len(items))
	}
}

func TestRecommendForNewUser_UnknownItem(t *testing.T) {
	f := newFixture(t, 3, 5)

	_, err := f.engine.RecommendForNewUser(context.Background(),
		[]string{f.itemIDs[0], "ghost"}, 5)
	if !core.IsUnknownItem(err) {
		t.Fatalf("err = %v, want unknown item", err)
	}
}
