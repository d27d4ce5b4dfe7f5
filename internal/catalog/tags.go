package catalog

import "strings"

// AbilityTag is a derived ability label from a closed vocabulary. Tags are
// computed once at ingestion by TagOracleText so that evaluation code never
// scans oracle text.
type AbilityTag string

const (
	// Combat keywords
	TagFlying         AbilityTag = "Flying"
	TagMenace         AbilityTag = "Menace"
	TagTrample        AbilityTag = "Trample"
	TagUnblockable    AbilityTag = "Unblockable"
	TagFirstStrike    AbilityTag = "FirstStrike"
	TagDoubleStrike   AbilityTag = "DoubleStrike"
	TagDeathtouch     AbilityTag = "Deathtouch"
	TagLifelink       AbilityTag = "Lifelink"
	TagHexproof       AbilityTag = "Hexproof"
	TagIndestructible AbilityTag = "Indestructible"
	TagVigilance      AbilityTag = "Vigilance"
	TagHaste          AbilityTag = "Haste"
	TagReach          AbilityTag = "Reach"
	TagFlash          AbilityTag = "Flash"
	TagDefender       AbilityTag = "Defender"

	// Card advantage
	TagCardDraw  AbilityTag = "CardDraw"
	TagDrawTwo   AbilityTag = "DrawTwo"
	TagDrawThree AbilityTag = "DrawThree"
	TagETBValue  AbilityTag = "ETBValue"

	// Interaction
	TagRemoval      AbilityTag = "Removal"
	TagRemovalExile AbilityTag = "RemovalExile"
	TagDirectDamage AbilityTag = "DirectDamage"
	TagAnyTarget    AbilityTag = "AnyTarget"
	TagBoardWipe    AbilityTag = "BoardWipe"
	TagCombatTrick  AbilityTag = "CombatTrick"

	// Auras and global effects
	TagDetrimentalAura AbilityTag = "DetrimentalAura"
	TagBeneficialAura  AbilityTag = "BeneficialAura"
	TagAnthem          AbilityTag = "Anthem"

	// Artifacts and mana
	TagEquipment    AbilityTag = "Equipment"
	TagKeywordGrant AbilityTag = "KeywordGrant"
	TagManaFixing   AbilityTag = "ManaFixing"
	TagLifegain     AbilityTag = "Lifegain"

	// Sideboard-relevant narrow answers
	TagArtifactRemoval    AbilityTag = "ArtifactRemoval"
	TagEnchantmentRemoval AbilityTag = "EnchantmentRemoval"
	TagProtection         AbilityTag = "Protection"
	TagGraveyardHate      AbilityTag = "GraveyardHate"

	// Thematic synergies
	TagPlusOneCounterSynergy AbilityTag = "PlusOneCounterSynergy"
)

// keywordPatterns maps simple keyword abilities to the phrase that identifies
// them in oracle text. Kept as an ordered slice so derived tag order is
// stable across runs and in exported records.
var keywordPatterns = []struct {
	tag     AbilityTag
	pattern string
}{
	{TagFlying, "flying"},
	{TagMenace, "menace"},
	{TagTrample, "trample"},
	{TagUnblockable, "can't be blocked"},
	{TagFirstStrike, "first strike"},
	{TagDoubleStrike, "double strike"},
	{TagDeathtouch, "deathtouch"},
	{TagLifelink, "lifelink"},
	{TagHexproof, "hexproof"},
	{TagIndestructible, "indestructible"},
	{TagVigilance, "vigilance"},
	{TagHaste, "haste"},
	{TagReach, "reach"},
	{TagFlash, "flash"},
	{TagDefender, "defender"},
}

// TagOracleText derives the ability-tag set for a card from its oracle text.
// This is the single place where text scanning happens; everything downstream
// works on the resulting tags. The returned tags are deduplicated and the
// scan is case-insensitive.
func TagOracleText(text string) []AbilityTag {
	lower := strings.ToLower(text)
	seen := make(map[AbilityTag]bool)
	var tags []AbilityTag

	add := func(tag AbilityTag) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	for _, kw := range keywordPatterns {
		if strings.Contains(lower, kw.pattern) {
			add(kw.tag)
		}
	}

	// Card draw, with rough quantity detection
	if strings.Contains(lower, "draw three") || strings.Contains(lower, "draw 3") ||
		strings.Contains(lower, "draws three") {
		add(TagCardDraw)
		add(TagDrawThree)
	} else if strings.Contains(lower, "draw two") || strings.Contains(lower, "draw 2") ||
		strings.Contains(lower, "draws two") {
		add(TagCardDraw)
		add(TagDrawTwo)
	} else if strings.Contains(lower, "draw a card") || strings.Contains(lower, "draws a card") {
		add(TagCardDraw)
	}

	// Enter-the-battlefield value
	if strings.Contains(lower, "when") && strings.Contains(lower, "enters") {
		add(TagETBValue)
	}

	// Removal
	wipe := strings.Contains(lower, "destroy all") || strings.Contains(lower, "exile all") ||
		strings.Contains(lower, "each creature")
	if wipe {
		add(TagBoardWipe)
	}
	if strings.Contains(lower, "exile target") || strings.Contains(lower, "exile all") {
		add(TagRemoval)
		add(TagRemovalExile)
	}
	if strings.Contains(lower, "destroy target creature") || strings.Contains(lower, "destroy all creatures") {
		add(TagRemoval)
	}
	if strings.Contains(lower, "deals") && strings.Contains(lower, "damage to") {
		add(TagDirectDamage)
		if strings.Contains(lower, "any target") {
			add(TagRemoval)
			add(TagAnyTarget)
		} else if strings.Contains(lower, "target creature") {
			add(TagRemoval)
		}
	}

	// Narrow answers
	if strings.Contains(lower, "destroy target artifact") || strings.Contains(lower, "exile target artifact") {
		add(TagArtifactRemoval)
	}
	if strings.Contains(lower, "destroy target enchantment") || strings.Contains(lower, "exile target enchantment") {
		add(TagEnchantmentRemoval)
	}
	if strings.Contains(lower, "protection from") {
		add(TagProtection)
	}
	if strings.Contains(lower, "exile target card from a graveyard") ||
		strings.Contains(lower, "exile all graveyards") ||
		strings.Contains(lower, "exile each opponent's graveyard") {
		add(TagGraveyardHate)
	}

	// Pump effects: instant-speed pump reads as a combat trick, static ones
	// as auras or anthems. Aura/anthem distinction is made by the loader
	// using the card's types; here we only mark the text shapes.
	if strings.Contains(lower, "gets +") {
		if strings.Contains(lower, "until end of turn") {
			add(TagCombatTrick)
		} else {
			add(TagBeneficialAura)
		}
	}
	if strings.Contains(lower, "can't attack") || strings.Contains(lower, "can't block") {
		add(TagDetrimentalAura)
	}
	if strings.Contains(lower, "creatures you control get +") {
		add(TagAnthem)
	}
	if strings.Contains(lower, "equipped creature") {
		add(TagEquipment)
		if containsAnyKeyword(lower) {
			add(TagKeywordGrant)
		}
	}

	// Mana and life
	if strings.Contains(lower, "add one mana of any color") ||
		strings.Contains(lower, "search your library for a basic land") {
		add(TagManaFixing)
	}
	if strings.Contains(lower, "gain") && strings.Contains(lower, "life") {
		add(TagLifegain)
	}

	// Counters-matter
	if strings.Contains(lower, "+1/+1 counter") || strings.Contains(lower, "proliferate") {
		add(TagPlusOneCounterSynergy)
	}

	return tags
}

// containsAnyKeyword reports whether lowered text mentions any simple keyword.
func containsAnyKeyword(lower string) bool {
	for _, kw := range keywordPatterns {
		if strings.Contains(lower, kw.pattern) {
			return true
		}
	}
	return false
}
