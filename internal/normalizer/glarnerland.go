package normalizer

import "github.com/seeuferweg-catalog/internal/domain"

// NormalizeGlarnerland преобразует запись Glarnerland в POI.
// ok=false, если координат нет, они нулевые или лежат вне region
func NormalizeGlarnerland(rec domain.GlarnerlandRecord, region domain.BoundingBox) (domain.POI, bool) {
	if rec.Geo == nil || !rec.Geo.Latitude.Valid || !rec.Geo.Longitude.Valid {
		return domain.POI{}, false
	}
	lat, lon := rec.Geo.Latitude.Value, rec.Geo.Longitude.Value
	if lat == 0 || lon == 0 || !region.Contains(lat, lon) {
		return domain.POI{}, false
	}

	addr := address(rec.Address)
	name := nameOrUnknown(rec.Name)
	price := firstString(rec.PriceRange.String())

	id := firstString(rec.Identifier.String())
	if id == "" {
		id = StableID(domain.SourceGlarnerland, name, &lat, &lon)
	}

	return domain.POI{
		ID:          id,
		Source:      domain.SourceGlarnerland,
		Name:        name,
		Description: firstText(rec.Description, rec.DisambiguatingDescription),
		Type:        CategorizeType(rec.Type.String(), rec.AdditionalType.String()),
		Category:    ExtractCategory(rec.Type.String(), rec.AdditionalType.String()),
		Location: domain.Location{
			Lat:        &lat,
			Lon:        &lon,
			Address:    addr.AddressLocality.String(),
			PostalCode: addr.PostalCode.String(),
		},
		Images: collectImages(rec.Image, rec.Photo),
		Contact: domain.Contact{
			Phone:   firstString(addr.Telephone.String(), rec.Telephone.String()),
			Email:   firstString(addr.Email.String(), rec.Email.String()),
			Website: firstString(addr.URL.String(), rec.URL.String()),
		},
		OpeningHours: resolve(rec.OpeningHours),
		Price:        price,
		PriceCHF:     ParsePriceCHF(price),
		DateModified: rec.DateModified.String(),
	}, true
}
