package service

// Тексты интерфейса бота.
const (
	textAskContact      = "Ro'yxatdan o'tish uchun telefon raqamingizni yuboring:"
	textShareContact    = "📞 Mening raqamimni yuborish"
	textRegistered      = "Rahmat! Siz %s raqami bilan muvaffaqiyatli ro'yxatdan o'tdingiz!"
	textForeignContact  = "Iltimos, boshqa kontaktni emas, o'zingizning raqamingizni tugma orqali yuboring."
	textInvalidPhone    = "Telefon raqami noto'g'ri. Iltimos, qaytadan yuboring."
	textRegisterFirst   = "Iltimos, avval /start buyrug'i orqali ro'yxatdan o'ting."
	textRegisterFailed  = "Ro'yxatdan o'tishda xatolik yuz berdi. Iltimos, qaytadan urinib ko'ring."
	textMainMenu        = "Asosiy menyu. Kerakli bo'limni tanlang:"
	textNotUnderstood   = "Tushunmadim. Asosiy menyudan tanlang."
	textChooseCategory  = "Kategoriyani tanlang:"
	textCategoryHeader  = "*%s* bo'limi.\nMiqdorni ➖ / ➕ tugmalari bilan o'zgartiring."
	textItemLine        = "%s - %s so'm"
	textCartHeader      = "🛒 *Savatchangiz:*\n\n"
	textCartEmpty       = "Savatchangiz bo'sh. Buyurtma berish bo'limidan mahsulot tanlang."
	textTotal           = "*Jami: %s so'm*"
	textChooseDelivery  = "Buyurtmani qanday olmoqchisiz?"
	textDeliveryChosen  = "🚚 Yetkazib berish tanlandi."
	textAskLocation     = "📍 Yetkazib berish manzilini yuboring:"
	textLocationAccept  = "Manzil qabul qilindi."
	textConfirmLocation = "📍 Manzil: %.6f, %.6f\nShu manzilga yetkazib beraylikmi?"
	textLocationDropped = "Manzil bekor qilindi."
	textOrderAccepted   = "✅ Buyurtmangiz qabul qilindi!\n\n%s\n\n*Jami: %s so'm*\n🚚 Usul: %s\n\nTez orada operatorimiz siz bilan bog'lanadi."
	textOrderFailed     = "Buyurtmani yuborib bo'lmadi. Iltimos, birozdan so'ng qayta urinib ko'ring."

	noticeStale      = "Bu tugma eskirgan"
	noticeEmptyCart  = "Savatchangiz bo'sh"
	noticeCartClear  = "Savatcha tozalandi."
	noticeOrderError = "Xatolik yuz berdi"
)

// Подписи кнопок.
const (
	labelOrder          = "🛍 Buyurtma berish"
	labelCart           = "🛒 Savatcha"
	labelBack           = "⬅️ Orqaga"
	labelCancel         = "❌ Bekor qilish"
	labelCheckout       = "✅ Rasmiylashtirish"
	labelClearCart      = "🗑 Savatchani tozalash"
	labelContinue       = "⬅️ Qo'shishni davom etish"
	labelBackCategories = "⬅️ Kategoriyalar"
	labelDecrease       = "➖"
	labelIncrease       = "➕"
	labelCourier        = "🚚 Yetkazib berish"
	labelPickup         = "🏃 Olib ketish"
	labelSendLocation   = "📍 Joylashuvni yuborish"
	labelYes            = "✅ Ha"
	labelNo             = "❌ Yo'q"
)
