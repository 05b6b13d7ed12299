package normalizer

import "github.com/seeuferweg-catalog/internal/domain"

const heidilandDefaultAddress = "Heidiland"

// NormalizeHeidiland преобразует запись Heidiland в POI без координат
func NormalizeHeidiland(rec domain.HeidilandRecord) domain.POI {
	addr := address(rec.Address)
	name := nameOrUnknown(rec.Name)
	primary := firstString(rec.AtType.String(), rec.Type.String())

	id := firstString(rec.Identifier.String(), rec.ID.String())
	if id == "" {
		id = StableID(domain.SourceHeidiland, name, nil, nil)
	}

	var offer domain.RawOffer
	if rec.Offers != nil {
		offer = *rec.Offers
	}

	price := firstString(resolve(offer.Description), rec.PriceRange.String())

	locality := addr.AddressLocality.String()
	if locality == "" {
		locality = heidilandDefaultAddress
	}

	return domain.POI{
		ID:          id,
		Source:      domain.SourceHeidiland,
		Name:        name,
		Description: firstText(rec.Description, rec.DisambiguatingDescription, rec.Abstract),
		Type:        CategorizeType(primary, rec.AdditionalType.String()),
		Category:    ExtractCategory(primary, rec.AdditionalType.String()),
		Location: domain.Location{
			Address:    locality,
			PostalCode: addr.PostalCode.String(),
		},
		Images: collectImages(rec.Image, rec.Photo),
		Contact: domain.Contact{
			Phone:   firstString(addr.Telephone.String(), rec.Telephone.String()),
			Email:   firstString(addr.Email.String(), rec.Email.String()),
			Website: firstString(addr.URL.String(), rec.URL.String(), offer.URL.String()),
		},
		OpeningHours: firstText(rec.OpeningHours, rec.OpeningHoursSpecification),
		Price:        price,
		PriceCHF:     ParsePriceCHF(price),
		DateModified: firstString(rec.DateModified.String(), rec.Modified.String()),
	}
}
