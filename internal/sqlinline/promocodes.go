package sqlinline

const QInsertPromoCode = `--sql 527b8b9a-3aef-491c-962f-5240d16e9159
insert into promo_codes (id, code, discount_percent, active, expires_at, created_at)
values (gen_random_uuid(), $1::text, $2::int, true, $3::timestamptz, now())
returning id, created_at;
`

const QSelectPromoCodeByCode = `--sql 0dd8511c-6458-419a-8b25-1e8dcc76639b
select id, code, discount_percent, active, expires_at, created_at
from promo_codes
where lower(code) = lower($1::text)
limit 1;
`

const QSelectPromoCodes = `--sql 292f92ab-e6f5-476d-b024-f135fca84c9e
select id, code, discount_percent, active, expires_at, created_at
from promo_codes
order by created_at desc;
`

const QUpdatePromoCodeActive = `--sql 3f6d0ce9-77fb-41fe-8c3c-ffb192da73bd
update promo_codes
set active = $2::boolean
where id = $1::uuid
returning id;
`
