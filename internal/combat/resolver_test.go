package combat

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

func newUnit(name string, side entity.Side, hp, mp, attack, defense, magic int) *entity.Unit {
	return entity.NewUnit(name, side, gamedata.StatBlock{
		HP: hp, MP: mp, Attack: attack, Defense: defense, Magic: magic,
	}, nil)
}

func mustSkill(t *testing.T, id string) *gamedata.SkillDef {
	t.Helper()
	skill := gamedata.MustLoadSkillRegistry().GetByID(id)
	if skill == nil {
		t.Fatalf("%s skill not found", id)
	}
	return skill
}

func TestAttackPhysical(t *testing.T) {
	// Warrior attack 15 against Goblin defense 4: 15 - 4 = 11.
	warrior := newUnit("Warrior", entity.SidePlayer, 120, 20, 15, 12, 3)
	goblin := newUnit("Goblin", entity.SideEnemy, 60, 15, 10, 4, 2)

	if preview := PreviewAttack(warrior, goblin); preview != 11 {
		t.Errorf("Expected preview 11, got %d", preview)
	}

	hit := Attack(warrior, goblin)
	if hit.Damage != 11 {
		t.Errorf("Expected 11 damage, got %d", hit.Damage)
	}
	if goblin.HP() != 49 {
		t.Errorf("Expected goblin HP 49, got %d", goblin.HP())
	}
}

func TestResolveDamageMagical(t *testing.T) {
	// Caster without magic, power 30 against target magic 10: 30 - 5 = 25.
	skill := &gamedata.SkillDef{ID: "test_bolt", Power: 30, DamageKind: gamedata.DamageMagical, TargetShape: gamedata.TargetSingleEnemy}
	caster := newUnit("Mage", entity.SidePlayer, 80, 50, 6, 4, 0)
	target := newUnit("Shaman", entity.SideEnemy, 60, 0, 0, 0, 10)

	result, err := Resolve(skill, caster, []*entity.Unit{target})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result.Hits[0].Damage != 25 {
		t.Errorf("Expected 25 magical damage, got %d", result.Hits[0].Damage)
	}
	if result.Hits[0].DamageKind != gamedata.DamageMagical {
		t.Errorf("Expected magical kind, got %s", result.Hits[0].DamageKind)
	}
}

func TestDamageAgainstByKind(t *testing.T) {
	caster := newUnit("Caster", entity.SidePlayer, 50, 50, 15, 0, 18)

	tests := []struct {
		kind     gamedata.DamageKind
		expected int
	}{
		{gamedata.DamagePhysical, 25},
		{gamedata.DamageMagical, 46},
		{gamedata.DamageTrue, 10},
		{"", 25},
	}
	for _, tt := range tests {
		skill := &gamedata.SkillDef{Power: 10, DamageKind: tt.kind}
		if got := DamageAgainst(skill, caster); got != tt.expected {
			t.Errorf("DamageAgainst(%q) = %d, want %d", tt.kind, got, tt.expected)
		}
	}

	if HealAmount(&gamedata.SkillDef{HealPower: 0}, caster) != 0 {
		t.Error("HealAmount should be 0 without heal power")
	}
	if HealAmount(&gamedata.SkillDef{HealPower: 35}, caster) != 53 {
		t.Error("HealAmount should add caster magic")
	}
}

func TestResolveHeal(t *testing.T) {
	// Cleric magic 14, heal 35: min(49, 60) = 49, HP 40 -> 89.
	heal := mustSkill(t, "heal")
	cleric := newUnit("Cleric", entity.SidePlayer, 100, 40, 8, 8, 14)
	ally := newUnit("Warrior", entity.SidePlayer, 100, 0, 0, 0, 0)
	ally.ApplyDamage(60, gamedata.DamageTrue)

	result, err := Resolve(heal, cleric, []*entity.Unit{ally})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result.Hits[0].Healed != 49 {
		t.Errorf("Expected 49 healing, got %d", result.Hits[0].Healed)
	}
	if ally.HP() != 89 {
		t.Errorf("Expected HP 89, got %d", ally.HP())
	}
	if cleric.MP() != 40-heal.MPCost {
		t.Errorf("Expected MP %d, got %d", 40-heal.MPCost, cleric.MP())
	}
}

func TestResolveInsufficientMPIsAtomic(t *testing.T) {
	strike := mustSkill(t, "power_strike") // 8 MP
	caster := newUnit("Warrior", entity.SidePlayer, 120, 5, 15, 12, 3)
	target := newUnit("Goblin", entity.SideEnemy, 60, 0, 10, 4, 2)

	if CanCast(strike, caster) {
		t.Error("CanCast should be false with 5 MP")
	}

	_, err := Resolve(strike, caster, []*entity.Unit{target})
	if !errors.Is(err, ErrInsufficientMP) {
		t.Fatalf("Expected ErrInsufficientMP, got %v", err)
	}
	if caster.MP() != 5 {
		t.Errorf("MP should remain 5, got %d", caster.MP())
	}
	if target.HP() != 60 || len(target.StatusEffects()) != 0 {
		t.Error("Target must be untouched by a failed cast")
	}
}

func TestResolveNoTargets(t *testing.T) {
	strike := mustSkill(t, "power_strike")
	caster := newUnit("Warrior", entity.SidePlayer, 120, 20, 15, 12, 3)

	if _, err := Resolve(strike, caster, nil); !errors.Is(err, ErrNoTargets) {
		t.Fatalf("Expected ErrNoTargets, got %v", err)
	}
	if caster.MP() != 20 {
		t.Errorf("No MP should be spent, got %d", caster.MP())
	}
	if _, err := Resolve(nil, caster, nil); !errors.Is(err, ErrUnknownSkill) {
		t.Errorf("Expected ErrUnknownSkill, got %v", err)
	}
}

func TestResolveDamageWithStatus(t *testing.T) {
	firebolt := mustSkill(t, "firebolt")
	mage := newUnit("Mage", entity.SidePlayer, 80, 50, 6, 4, 18)
	orc := newUnit("Orc", entity.SideEnemy, 200, 10, 18, 8, 1)

	result, err := Resolve(firebolt, mage, []*entity.Unit{orc})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	hit := result.Hits[0]
	// 30 + 18*2 = 66, orc magic 1 mitigates 0.
	if hit.Damage != 66 {
		t.Errorf("Expected 66 damage, got %d", hit.Damage)
	}
	if len(hit.Applied) != 1 || hit.Applied[0].Kind != gamedata.StatusBurn {
		t.Fatalf("Expected burn to be applied, got %+v", hit.Applied)
	}
	if !orc.HasStatusEffect(gamedata.StatusBurn) {
		t.Error("Orc should be burning")
	}
}

func TestResolveStatusAppliedOnDefeatedTarget(t *testing.T) {
	firebolt := mustSkill(t, "firebolt")
	mage := newUnit("Mage", entity.SidePlayer, 80, 50, 6, 4, 18)
	goblin := newUnit("Goblin", entity.SideEnemy, 20, 0, 10, 4, 2)

	result, err := Resolve(firebolt, mage, []*entity.Unit{goblin})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result.Hits[0].Damage != 20 {
		t.Errorf("Damage should clamp to remaining HP, got %d", result.Hits[0].Damage)
	}
	if goblin.IsAlive() {
		t.Fatal("Goblin should be defeated")
	}
	if len(result.Hits[0].Applied) != 1 || !goblin.HasStatusEffect(gamedata.StatusBurn) {
		t.Error("Every component of the cast applies, even to a target it defeated")
	}
}

func TestResolveBuffsAndDebuffs(t *testing.T) {
	bless := mustSkill(t, "bless")
	cleric := newUnit("Cleric", entity.SidePlayer, 100, 40, 8, 8, 14)
	warrior := newUnit("Warrior", entity.SidePlayer, 120, 20, 15, 12, 3)

	result, err := Resolve(bless, cleric, []*entity.Unit{warrior})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	applied := result.Hits[0].Applied
	expected := []gamedata.StatusKind{gamedata.StatusBlessed, gamedata.StatusAttackUp, gamedata.StatusDefenseUp, gamedata.StatusMagicUp}
	if len(applied) != len(expected) {
		t.Fatalf("Expected %d effects, got %d", len(expected), len(applied))
	}
	for i, kind := range expected {
		if applied[i].Kind != kind {
			t.Errorf("Effect %d: expected %s, got %s", i, kind, applied[i].Kind)
		}
	}
	if warrior.Attack() != 20 || warrior.Defense() != 17 || warrior.Magic() != 8 {
		t.Errorf("Unexpected buffed stats: atk %d def %d mag %d", warrior.Attack(), warrior.Defense(), warrior.Magic())
	}

	roar := mustSkill(t, "roar")
	ogre := newUnit("Ogre", entity.SideEnemy, 160, 16, 20, 10, 2)
	if _, err := Resolve(roar, ogre, []*entity.Unit{warrior}); err != nil {
		t.Fatalf("Resolve roar failed: %v", err)
	}
	if !warrior.HasStatusEffect(gamedata.StatusAttackDown) || warrior.Attack() != 17 {
		t.Errorf("Expected attack_down applied, attack = %d", warrior.Attack())
	}
	if warrior.HP() != 120 {
		t.Error("Roar has no damage component")
	}
}

func TestResolveAllTargetsIndependently(t *testing.T) {
	lightning := mustSkill(t, "lightning")
	mage := newUnit("Mage", entity.SidePlayer, 80, 50, 6, 4, 18)
	a := newUnit("Goblin A", entity.SideEnemy, 60, 0, 10, 4, 2)
	b := newUnit("Goblin B", entity.SideEnemy, 60, 0, 10, 4, 20)

	result, err := Resolve(lightning, mage, []*entity.Unit{a, b})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(result.Hits) != 2 {
		t.Fatalf("Expected 2 hits, got %d", len(result.Hits))
	}
	// 18 + 36 = 54; A mitigates 1, B mitigates 10.
	if result.Hits[0].Damage != 53 || result.Hits[1].Damage != 44 {
		t.Errorf("Unexpected damage: %d, %d", result.Hits[0].Damage, result.Hits[1].Damage)
	}
	if len(result.Targets()) != 2 || result.Targets()[1] != b {
		t.Error("Targets() should list hits in order")
	}
}

func TestPreviewDamageDoesNotMutate(t *testing.T) {
	strike := mustSkill(t, "power_strike")
	warrior := newUnit("Warrior", entity.SidePlayer, 120, 20, 15, 12, 3)
	goblin := newUnit("Goblin", entity.SideEnemy, 60, 15, 10, 4, 2)

	// 25 + 15 - 4 = 36
	if got := PreviewDamage(strike, warrior, goblin); got != 36 {
		t.Errorf("Expected preview 36, got %d", got)
	}
	if goblin.HP() != 60 || warrior.MP() != 20 {
		t.Error("PreviewDamage must not mutate")
	}
	if PreviewDamage(mustSkill(t, "heal"), warrior, goblin) != 0 {
		t.Error("Non-damaging skills preview as 0")
	}
}

func TestUseItem(t *testing.T) {
	items := gamedata.MustLoadItemRegistry()
	u := newUnit("Mage", entity.SidePlayer, 80, 50, 6, 4, 18)
	u.ApplyDamage(70, gamedata.DamageTrue)
	u.SpendMP(45)

	hit := UseItem(items.GetByID("health_potion"), u)
	if hit.Healed != 50 || u.HP() != 60 {
		t.Errorf("Health potion should heal 50, healed %d", hit.Healed)
	}
	hit = UseItem(items.GetByID("mana_potion"), u)
	if hit.MPRestored != 30 || u.MP() != 35 {
		t.Errorf("Mana potion should restore 30, restored %d", hit.MPRestored)
	}
}

func TestCandidatesByShape(t *testing.T) {
	p1 := newUnit("P1", entity.SidePlayer, 10, 0, 0, 0, 0)
	p2 := newUnit("P2", entity.SidePlayer, 10, 0, 0, 0, 0)
	e1 := newUnit("E1", entity.SideEnemy, 10, 0, 0, 0, 0)
	e2 := newUnit("E2", entity.SideEnemy, 10, 0, 0, 0, 0)
	e3 := newUnit("E3", entity.SideEnemy, 10, 0, 0, 0, 0)
	e2.ApplyDamage(100, gamedata.DamageTrue)

	players := entity.Roster{p1, p2}
	enemies := entity.Roster{e1, e2, e3}

	tests := []struct {
		shape    gamedata.TargetShape
		caster   *entity.Unit
		expected []*entity.Unit
	}{
		{gamedata.TargetSelf, p1, []*entity.Unit{p1}},
		{gamedata.TargetSingleAlly, p1, []*entity.Unit{p1, p2}},
		{gamedata.TargetAllAllies, e1, []*entity.Unit{e1, e3}},
		{gamedata.TargetSingleEnemy, p2, []*entity.Unit{e1, e3}},
		{gamedata.TargetAllEnemies, e3, []*entity.Unit{p1, p2}},
		{gamedata.TargetRandomEnemy, p1, []*entity.Unit{e1, e3}},
	}

	for _, tt := range tests {
		got := Candidates(tt.shape, tt.caster, players, enemies)
		if len(got) != len(tt.expected) {
			t.Errorf("%s: expected %d candidates, got %d", tt.shape, len(tt.expected), len(got))
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("%s: candidate %d is %s, want %s", tt.shape, i, got[i].Name, tt.expected[i].Name)
			}
		}
	}
}

func TestValidTargetsRandomEnemy(t *testing.T) {
	p := newUnit("P", entity.SidePlayer, 10, 0, 0, 0, 0)
	e1 := newUnit("E1", entity.SideEnemy, 10, 0, 0, 0, 0)
	e2 := newUnit("E2", entity.SideEnemy, 10, 0, 0, 0, 0)
	rng := rand.New(rand.NewSource(42))

	seen := map[*entity.Unit]bool{}
	for i := 0; i < 50; i++ {
		targets := ValidTargets(gamedata.TargetRandomEnemy, p, entity.Roster{p}, entity.Roster{e1, e2}, rng)
		if len(targets) != 1 {
			t.Fatalf("random_enemy should yield exactly one target, got %d", len(targets))
		}
		seen[targets[0]] = true
	}
	if len(seen) != 2 {
		t.Error("random_enemy should eventually pick every living enemy")
	}

	e1.ApplyDamage(100, gamedata.DamageTrue)
	e2.ApplyDamage(100, gamedata.DamageTrue)
	if targets := ValidTargets(gamedata.TargetRandomEnemy, p, entity.Roster{p}, entity.Roster{e1, e2}, rng); len(targets) != 0 {
		t.Error("random_enemy with no living enemies should be empty")
	}
}

func TestSelectTargets(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := newUnit("P", entity.SidePlayer, 10, 0, 0, 0, 0)
	ally := newUnit("Ally", entity.SidePlayer, 10, 0, 0, 0, 0)
	e := newUnit("E", entity.SideEnemy, 10, 0, 0, 0, 0)
	players, enemies := entity.Roster{p, ally}, entity.Roster{e}

	single := &gamedata.SkillDef{TargetShape: gamedata.TargetSingleEnemy}
	if targets, ok := SelectTargets(single, p, []*entity.Unit{e}, players, enemies, rng); !ok || targets[0] != e {
		t.Error("Expected the chosen enemy to be selected")
	}
	if _, ok := SelectTargets(single, p, []*entity.Unit{ally}, players, enemies, rng); ok {
		t.Error("An ally is not a legal single_enemy target")
	}
	if _, ok := SelectTargets(single, p, nil, players, enemies, rng); ok {
		t.Error("single_enemy requires a chosen target")
	}

	group := &gamedata.SkillDef{TargetShape: gamedata.TargetAllAllies}
	if targets, ok := SelectTargets(group, p, nil, players, enemies, rng); !ok || len(targets) != 2 {
		t.Error("all_allies should ignore chosen targets and return the whole side")
	}
}

func TestTickAllOrderAndSkipsDead(t *testing.T) {
	p := newUnit("P", entity.SidePlayer, 10, 0, 0, 0, 0)
	dead := newUnit("Dead", entity.SidePlayer, 10, 0, 0, 0, 0)
	e := newUnit("E", entity.SideEnemy, 10, 0, 0, 0, 0)

	p.AddStatusEffect(entity.StatusEffect{Kind: gamedata.StatusPoison, Remaining: 2, Magnitude: 3})
	dead.AddStatusEffect(entity.StatusEffect{Kind: gamedata.StatusPoison, Remaining: 2, Magnitude: 3})
	dead.ApplyDamage(100, gamedata.DamageTrue)
	e.AddStatusEffect(entity.StatusEffect{Kind: gamedata.StatusRegeneration, Remaining: 1, Magnitude: 5})

	ticks := TickAll(entity.Roster{p, dead}, entity.Roster{e})
	if len(ticks) != 2 {
		t.Fatalf("Expected 2 ticks, got %d", len(ticks))
	}
	if ticks[0].Unit != p || ticks[1].Unit != e {
		t.Error("Ticks should run players first, then enemies")
	}
	if ticks[0].Result.Magnitude != 3 || p.HP() != 7 {
		t.Errorf("Poison should deal 3, got %d", ticks[0].Result.Magnitude)
	}
	if ticks[1].Result.Magnitude != 0 || !ticks[1].Result.Expired {
		t.Errorf("Regeneration at full HP heals 0 and expires: %+v", ticks[1].Result)
	}
	if len(dead.StatusEffects()) != 1 {
		t.Error("Effects on defeated units must not tick")
	}
}
