package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Leaning is the five-point ideological scale for a classified opinion,
// ordered Very Liberal < Liberal < Center < Conservative < Very Conservative.
type Leaning string

const (
	VeryLiberal      Leaning = "Very Liberal"
	Liberal          Leaning = "Liberal"
	Center           Leaning = "Center"
	Conservative     Leaning = "Conservative"
	VeryConservative Leaning = "Very Conservative"
)

// Leanings lists the valid scale values in order, most liberal first.
var Leanings = []Leaning{VeryLiberal, Liberal, Center, Conservative, VeryConservative}

// ParseLeaning validates a raw scale value. Matching is case-insensitive;
// values outside the scale are rejected.
func ParseLeaning(s string) (Leaning, error) {
	trimmed := strings.TrimSpace(s)
	for _, l := range Leanings {
		if strings.EqualFold(string(l), trimmed) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: leaning %q", ErrInvalidInput, s)
}

// Score maps the scale onto -2..+2, liberal negative, conservative positive.
func (l Leaning) Score() int {
	switch l {
	case VeryLiberal:
		return -2
	case Liberal:
		return -1
	case Conservative:
		return 1
	case VeryConservative:
		return 2
	default:
		return 0
	}
}

// Confidence is the model's stated confidence in a classification.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Confidences lists the valid confidence values, strongest first.
var Confidences = []Confidence{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}

// ParseConfidence validates a raw confidence value, case-insensitively.
func ParseConfidence(s string) (Confidence, error) {
	trimmed := strings.TrimSpace(s)
	for _, c := range Confidences {
		if strings.EqualFold(string(c), trimmed) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: confidence %q", ErrInvalidInput, s)
}

// Tag is one entry of the fixed topic taxonomy. The taxonomy is closed:
// classification output carrying any other value is normalized away.
type Tag string

// Constitutional amendment tags, in ordinal order.
const (
	TagFirstAmendment        Tag = "First Amendment"
	TagSecondAmendment       Tag = "Second Amendment"
	TagThirdAmendment        Tag = "Third Amendment"
	TagFourthAmendment       Tag = "Fourth Amendment"
	TagFifthAmendment        Tag = "Fifth Amendment"
	TagSixthAmendment        Tag = "Sixth Amendment"
	TagSeventhAmendment      Tag = "Seventh Amendment"
	TagEighthAmendment       Tag = "Eighth Amendment"
	TagNinthAmendment        Tag = "Ninth Amendment"
	TagTenthAmendment        Tag = "Tenth Amendment"
	TagEleventhAmendment     Tag = "Eleventh Amendment"
	TagThirteenthAmendment   Tag = "Thirteenth Amendment"
	TagFourteenthAmendment   Tag = "Fourteenth Amendment"
	TagFifteenthAmendment    Tag = "Fifteenth Amendment"
	TagSixteenthAmendment    Tag = "Sixteenth Amendment"
	TagNineteenthAmendment   Tag = "Nineteenth Amendment"
	TagTwentyFirstAmendment  Tag = "Twenty-First Amendment"
	TagTwentyFourthAmendment Tag = "Twenty-Fourth Amendment"
	TagTwentySixthAmendment  Tag = "Twenty-Sixth Amendment"
)

// Topic tags.
const (
	TagAbortion             Tag = "Abortion"
	TagAdministrativeLaw    Tag = "Administrative Law"
	TagAntitrust            Tag = "Antitrust"
	TagBankruptcy           Tag = "Bankruptcy"
	TagBusinessCommerce     Tag = "Business/Commerce"
	TagCapitalPunishment    Tag = "Capital Punishment"
	TagCivilRights          Tag = "Civil Rights"
	TagCriminalJustice      Tag = "Criminal Justice"
	TagEducation            Tag = "Education"
	TagElectionLaw          Tag = "Election Law"
	TagEmployment           Tag = "Employment"
	TagEnvironment          Tag = "Environment"
	TagFamilyLaw            Tag = "Family Law"
	TagFederalPower         Tag = "Federal Power"
	TagHealthcare           Tag = "Healthcare"
	TagImmigration          Tag = "Immigration"
	TagIntellectualProperty Tag = "Intellectual Property"
	TagInternationalLaw     Tag = "International Law"
	TagLGBTQRights          Tag = "LGBTQ Rights"
	TagNativeAmericanLaw    Tag = "Native American Law"
	TagNationalSecurity     Tag = "National Security"
	TagPolicePower          Tag = "Police Power"
	TagPrivacy              Tag = "Privacy"
	TagPropertyRights       Tag = "Property Rights"
	TagStateRights          Tag = "State Rights"
	TagTaxation             Tag = "Taxation"
	TagTechnology           Tag = "Technology"
	TagVotingRights         Tag = "Voting Rights"
)

// AmendmentTags lists the amendment tags in ordinal order.
var AmendmentTags = []Tag{
	TagFirstAmendment, TagSecondAmendment, TagThirdAmendment,
	TagFourthAmendment, TagFifthAmendment, TagSixthAmendment,
	TagSeventhAmendment, TagEighthAmendment, TagNinthAmendment,
	TagTenthAmendment, TagEleventhAmendment, TagThirteenthAmendment,
	TagFourteenthAmendment, TagFifteenthAmendment, TagSixteenthAmendment,
	TagNineteenthAmendment, TagTwentyFirstAmendment, TagTwentyFourthAmendment,
	TagTwentySixthAmendment,
}

// TopicTags lists the non-amendment tags. The order matches the prompt the
// classifier sends, so it is part of the external contract.
var TopicTags = []Tag{
	TagAbortion, TagAdministrativeLaw, TagAntitrust, TagBankruptcy,
	TagBusinessCommerce, TagCapitalPunishment, TagCivilRights,
	TagCriminalJustice, TagEducation, TagElectionLaw, TagEmployment,
	TagEnvironment, TagFamilyLaw, TagFederalPower, TagHealthcare,
	TagImmigration, TagIntellectualProperty, TagInternationalLaw,
	TagLGBTQRights, TagNativeAmericanLaw, TagNationalSecurity, TagPolicePower,
	TagPrivacy, TagPropertyRights, TagStateRights, TagTaxation, TagTechnology,
	TagVotingRights,
}

// Taxonomy is the full closed tag set: amendments followed by topics.
var Taxonomy = slices.Concat(AmendmentTags, TopicTags)

// ParseTag validates a raw tag value against the taxonomy. Exact matches are
// preferred; a case-insensitive match normalizes to the canonical spelling.
func ParseTag(s string) (Tag, error) {
	trimmed := Tag(strings.TrimSpace(s))
	if slices.Contains(Taxonomy, trimmed) {
		return trimmed, nil
	}
	for _, known := range Taxonomy {
		if strings.EqualFold(string(known), string(trimmed)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tag %q", ErrInvalidInput, s)
}
